package prompt

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
)

// Greeting is the phrase the model is asked to open a session with.
const Greeting = " Welcome to Internet Guardian! I'm here to help you stay safe online."

const maxIntelLength = 500

//go:embed templates/system.md
var systemPromptTemplate string

var systemPrompt = template.Must(template.New("system").Parse(systemPromptTemplate))

type namedValue struct {
	Name  string
	Value string
}

type urlContext struct {
	Hostname         string
	HTTPS            bool
	HSTSPresent      bool
	IsCloudflareLike bool
	Reachable        bool
	Headers          []namedValue
	Intel            []namedValue
}

type systemData struct {
	FirstQuery bool
	Greeting   string
	URL        *urlContext
}

// BuildSystemPrompt renders the system instruction. The output depends only
// on its arguments.
func BuildSystemPrompt(enrichment *analysis.Enrichment, isURL, isFirstQuery bool) (string, error) {
	data := systemData{
		FirstQuery: isFirstQuery,
		Greeting:   Greeting,
	}
	if isURL {
		data.URL = newURLContext(enrichment)
	}

	var buf bytes.Buffer
	if err := systemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute system prompt template")
	}
	return strings.TrimSpace(buf.String()), nil
}

// BuildUserPrompt renders the user turn for the query.
func BuildUserPrompt(q analysis.Query) string {
	if analysis.IsURL(q) {
		return "Analyze this URL for security threats: " + q.Input()
	}
	return "Answer this security-related question: " + q.Input()
}

func newURLContext(e *analysis.Enrichment) *urlContext {
	if e == nil {
		return &urlContext{}
	}

	ctx := &urlContext{
		Hostname:         e.Hostname,
		HTTPS:            e.HTTPS,
		HSTSPresent:      e.HSTSPresent,
		IsCloudflareLike: e.IsCloudflareLike,
		Reachable:        e.TLSVerified,
	}

	for name, value := range e.SecurityHeaders {
		ctx.Headers = append(ctx.Headers, namedValue{Name: name, Value: value})
	}
	sort.Slice(ctx.Headers, func(i, j int) bool { return ctx.Headers[i].Name < ctx.Headers[j].Name })

	for name, value := range e.ExternalIntel {
		ctx.Intel = append(ctx.Intel, namedValue{Name: name, Value: formatIntel(value)})
	}
	sort.Slice(ctx.Intel, func(i, j int) bool { return ctx.Intel[i].Name < ctx.Intel[j].Name })

	return ctx
}

// formatIntel encodes v as compact JSON; map keys are sorted by encoding/json.
func formatIntel(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "(unavailable)"
	}
	s := string(raw)
	if len(s) > maxIntelLength {
		s = s[:maxIntelLength] + "..."
	}
	return s
}
