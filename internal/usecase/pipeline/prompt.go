package pipeline

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// transcriptPreviewChars bounds the transcript excerpt sent with a repair request
const transcriptPreviewChars = 500

type promptSpec struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
	Schema string `yaml:"schema,omitempty"`
}

type promptFile struct {
	Extract promptSpec `yaml:"extract"`
	Analyze promptSpec `yaml:"analyze"`
	Repair  promptSpec `yaml:"repair"`
}

type compiledPrompt struct {
	system *template.Template
	user   *template.Template
	schema string
}

// Prompts renders the primary and repair requests for each variant
type Prompts struct {
	variants map[entities.Variant]compiledPrompt
	repair   compiledPrompt
}

type primaryData struct {
	Transcript string
	Metadata   string
	Schema     string
}

type repairData struct {
	Malformed         string
	Error             string
	TranscriptPreview string
	Schema            string
}

// LoadPrompts reads prompt templates from path, or the embedded defaults when
// path is empty.
func LoadPrompts(path string) (*Prompts, error) {
	if path == "" {
		return ParsePrompts(defaultPrompts)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	return ParsePrompts(data)
}

// DefaultPrompts returns the embedded templates
func DefaultPrompts() *Prompts {
	p, err := ParsePrompts(defaultPrompts)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePrompts compiles a YAML prompt document
func ParsePrompts(data []byte) (*Prompts, error) {
	var file promptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}

	extract, err := compile("extract", file.Extract, true)
	if err != nil {
		return nil, err
	}
	analyze, err := compile("analyze", file.Analyze, true)
	if err != nil {
		return nil, err
	}
	repair, err := compile("repair", file.Repair, false)
	if err != nil {
		return nil, err
	}

	return &Prompts{
		variants: map[entities.Variant]compiledPrompt{
			entities.VariantExtraction: extract,
			entities.VariantAnalysis:   analyze,
		},
		repair: repair,
	}, nil
}

func compile(name string, spec promptSpec, needSchema bool) (compiledPrompt, error) {
	if strings.TrimSpace(spec.System) == "" || strings.TrimSpace(spec.User) == "" {
		return compiledPrompt{}, fmt.Errorf("prompts: %s needs system and user templates", name)
	}
	if needSchema && strings.TrimSpace(spec.Schema) == "" {
		return compiledPrompt{}, fmt.Errorf("prompts: %s needs a schema description", name)
	}
	system, err := template.New(name + ".system").Option("missingkey=error").Parse(spec.System)
	if err != nil {
		return compiledPrompt{}, fmt.Errorf("prompts: %s system: %w", name, err)
	}
	user, err := template.New(name + ".user").Option("missingkey=error").Parse(spec.User)
	if err != nil {
		return compiledPrompt{}, fmt.Errorf("prompts: %s user: %w", name, err)
	}
	return compiledPrompt{system: system, user: user, schema: strings.TrimSpace(spec.Schema)}, nil
}

// Primary renders the first generation request for a variant
func (p *Prompts) Primary(v entities.Variant, in entities.NormalizedInput) (ai.Request, error) {
	cp, ok := p.variants[v]
	if !ok {
		return ai.Request{}, entities.ErrUnknownVariant
	}
	data := primaryData{
		Transcript: in.Transcript,
		Metadata:   MetadataJSON(in),
		Schema:     cp.schema,
	}
	return render(cp, ai.ModePrimary, v, data)
}

// Repair renders the correction request for an invalid output
func (p *Prompts) Repair(v entities.Variant, in entities.NormalizedInput, verr *entities.ValidationError) (ai.Request, error) {
	cp, ok := p.variants[v]
	if !ok {
		return ai.Request{}, entities.ErrUnknownVariant
	}
	data := repairData{
		Malformed:         verr.Raw.Serialize(),
		Error:             verr.Error(),
		TranscriptPreview: TranscriptPreview(in.Transcript, transcriptPreviewChars),
		Schema:            cp.schema,
	}
	return render(p.repair, ai.ModeRepair, v, data)
}

// Schema returns the schema description for a variant
func (p *Prompts) Schema(v entities.Variant) string {
	return p.variants[v].schema
}

func render(cp compiledPrompt, mode ai.Mode, v entities.Variant, data interface{}) (ai.Request, error) {
	var system, user strings.Builder
	if err := cp.system.Execute(&system, data); err != nil {
		return ai.Request{}, fmt.Errorf("render %s: %w", cp.system.Name(), err)
	}
	if err := cp.user.Execute(&user, data); err != nil {
		return ai.Request{}, fmt.Errorf("render %s: %w", cp.user.Name(), err)
	}
	return ai.Request{
		Mode:    mode,
		Variant: v,
		System:  system.String(),
		Prompt:  user.String(),
	}, nil
}

// MetadataJSON renders the provided metadata with absent fields dropped
func MetadataJSON(in entities.NormalizedInput) string {
	meta := make(map[string]string, 7)
	put := func(key string, v *string) {
		if v != nil {
			meta[key] = *v
		}
	}
	put("meeting_id", in.MeetingID)
	put("customer_id", in.CustomerID)
	put("customer_name", in.CustomerName)
	put("banker_id", in.BankerID)
	put("banker_name", in.BankerName)
	put("meet_type", in.MeetingType)
	if in.MeetingDate != nil {
		meta["meet_date"] = in.MeetingDate.UTC().Format(time.RFC3339Nano)
	}

	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// TranscriptPreview returns at most n characters of s, marking the cut
func TranscriptPreview(s string, n int) string {
	total := utf8.RuneCountInString(s)
	if total <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + fmt.Sprintf("... (truncated, total: %d chars)", total)
}
