package whois_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/guardian/pkg/tool/whois"
)

const sampleRecord = `Domain Name: EXAMPLE.COM
Registrar: Example Registrar, Inc.
Updated Date: 2024-08-14T07:01:34Z
Creation Date: 1995-08-14T04:00:00Z
Registry Expiry Date: 2025-08-13T04:00:00Z
Name Server: A.IANA-SERVERS.NET
Name Server: B.IANA-SERVERS.NET
`

func TestWhois_Lookup(t *testing.T) {
	action := &whois.Action{}
	action.SetQueryFunc(func(_ context.Context, target string) (string, error) {
		gt.Value(t, target).Equal("example.com")
		return sampleRecord, nil
	})

	resp, err := action.Lookup(context.Background(), "WWW.Example.com")
	gt.NoError(t, err).Required()
	gt.Value(t, resp["target"]).Equal("example.com")
	gt.Value(t, resp["registrar"]).Equal("Example Registrar, Inc.")
	gt.Value(t, resp["created"]).Equal("1995-08-14T04:00:00Z")
	gt.Value(t, resp["expires"]).Equal("2025-08-13T04:00:00Z")
	gt.Value(t, resp["updated"]).Equal("2024-08-14T07:01:34Z")
	gt.Value(t, resp["raw"]).Equal(sampleRecord)

	ns, ok := resp["name_servers"].([]string)
	gt.True(t, ok)
	gt.A(t, ns).Length(2).At(0, func(t testing.TB, v string) {
		gt.Equal(t, v, "a.iana-servers.net")
	})
}

func TestWhois_TruncatesRaw(t *testing.T) {
	action := &whois.Action{}
	action.SetQueryFunc(func(_ context.Context, _ string) (string, error) {
		return strings.Repeat("x", 5000), nil
	})

	resp, err := action.Lookup(context.Background(), "example.com")
	gt.NoError(t, err).Required()
	raw, ok := resp["raw"].(string)
	gt.True(t, ok)
	gt.Equal(t, len(raw), 2000)
}

func TestWhois_EmptyHostname(t *testing.T) {
	action := &whois.Action{}
	_, err := action.Lookup(context.Background(), " ")
	gt.Error(t, err)
}

func TestWhois_QueryError(t *testing.T) {
	action := &whois.Action{}
	action.SetQueryFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("connection refused")
	})

	_, err := action.Lookup(context.Background(), "example.com")
	gt.Error(t, err)
}

func TestWhois_Flags(t *testing.T) {
	action := &whois.Action{}
	gt.A(t, action.Flags()).Length(1)
	gt.False(t, action.Enabled())
	gt.Value(t, action.Name()).Equal("whois")
}
