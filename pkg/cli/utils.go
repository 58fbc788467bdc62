package cli

import (
	"log/slog"

	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/tool/otx"
	"github.com/secmon-lab/guardian/pkg/tool/radar"
	"github.com/secmon-lab/guardian/pkg/tool/vt"
	"github.com/secmon-lab/guardian/pkg/tool/whois"
	"github.com/urfave/cli/v3"
)

func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, flag := range flags {
		result = append(result, flag...)
	}
	return result
}

// intelSource is a domain intel lookup configured from CLI flags.
type intelSource interface {
	interfaces.DomainIntel
	Flags() []cli.Flag
	LogValue() slog.Value
	Enabled() bool
}

type intelList []intelSource

func newIntelList() intelList {
	return intelList{
		&radar.Action{},
		&whois.Action{},
		&vt.Action{},
		&otx.Action{},
	}
}

func (x intelList) Flags() []cli.Flag {
	flags := []cli.Flag{}
	for _, src := range x {
		flags = append(flags, src.Flags()...)
	}
	return flags
}

func (x intelList) LogValue() slog.Value {
	var attrs []slog.Attr
	for _, src := range x {
		attrs = append(attrs, slog.Any(src.Name(), src.LogValue()))
	}
	return slog.GroupValue(attrs...)
}

// Sources returns the enabled lookups.
func (x intelList) Sources() []interfaces.DomainIntel {
	var sources []interfaces.DomainIntel
	for _, src := range x {
		if src.Enabled() {
			sources = append(sources, src)
		}
	}
	return sources
}
