package enrich

var IsBlockedIP = isBlockedIP
