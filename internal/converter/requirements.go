package converter

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docx2testlink/internal/config"
	"github.com/frherrer/docx2testlink/internal/document"
	"github.com/frherrer/docx2testlink/internal/domain"
	tmpl "github.com/frherrer/docx2testlink/internal/template"
)

const (
	requirementTypeFeature = 2
	// column 1 holds title, id, description, (unused), status
	requirementColumn     = 1
	requirementColumnRows = 5
)

// RequirementOptions configures a RequirementExtractor.
type RequirementOptions struct {
	ReqID         string
	Version       string
	Level         string
	SpecType      int
	DefaultStatus string
}

// RequirementOptionsFromConfig builds RequirementOptions from the
// requirements section of the configuration.
func RequirementOptionsFromConfig(cfg config.RequirementsConfig) RequirementOptions {
	return RequirementOptions{
		ReqID:         cfg.ReqID,
		Version:       cfg.Version,
		Level:         cfg.Level,
		SpecType:      cfg.SpecType(),
		DefaultStatus: cfg.DefaultStatus,
	}
}

// RequirementExtractor recognizes requirement specifications and their
// requirement tables.
type RequirementExtractor struct {
	opts   RequirementOptions
	engine tmpl.TemplateEngine
	log    logrus.FieldLogger
}

// NewRequirementExtractor creates a RequirementExtractor. A nil log discards
// all output.
func NewRequirementExtractor(opts RequirementOptions, engine tmpl.TemplateEngine, log logrus.FieldLogger) *RequirementExtractor {
	return &RequirementExtractor{opts: opts, engine: engine, log: orDiscard(log)}
}

// Convert extracts the requirement specifications of doc and renders them as
// a <requirement-specification> document.
func (x *RequirementExtractor) Convert(doc *document.Document) (string, error) {
	specs, err := x.Extract(doc)
	if err != nil {
		return "", err
	}
	return x.engine.RenderRequirements(specs)
}

// specBuilder collects one specification until its next heading.
type specBuilder struct {
	title        string
	scope        []string
	scopeClosed  bool
	requirements []domain.Requirement
}

// Extract walks doc once and returns its requirement specifications in
// document order.
func (x *RequirementExtractor) Extract(doc *document.Document) ([]domain.RequirementSpec, error) {
	s, err := document.NewScanner(doc)
	if err != nil {
		return nil, err
	}

	opts := ClassifyOptions{Mode: ModeRequirements, ReqID: x.opts.ReqID}
	var specs []domain.RequirementSpec
	var pending *specBuilder

	for {
		b, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch Classify(b, opts) {
		case SpecHeading:
			if pending != nil {
				specs = append(specs, x.finishSpec(pending, len(specs)+1))
			}
			p := b.(*document.Paragraph)
			pending = &specBuilder{title: p.Text}
			x.log.WithField("title", p.Text).Debug("Requirement specification heading")

		case Paragraph:
			p := b.(*document.Paragraph)
			if pending != nil && !pending.scopeClosed && p.Text != "" {
				pending.scope = append(pending.scope, p.Text)
			}

		case ReqTable:
			if pending == nil {
				x.log.Warn("Requirement table before any requirements heading, skipping")
				continue
			}
			pending.scopeClosed = true
			req, err := x.readRequirement(b.(*document.Table), len(pending.requirements)+1)
			if err != nil {
				return nil, err
			}
			pending.requirements = append(pending.requirements, req)
			x.log.WithFields(logrus.Fields{
				"spec":  pending.title,
				"docid": req.DocID,
			}).Debug("Requirement extracted")

		case Table:
			if pending != nil {
				pending.scopeClosed = true
			}
		}
	}

	if pending != nil {
		specs = append(specs, x.finishSpec(pending, len(specs)+1))
	}
	return specs, nil
}

func (x *RequirementExtractor) finishSpec(b *specBuilder, order int) domain.RequirementSpec {
	return domain.RequirementSpec{
		Title:        ReplaceAngles(b.title),
		DocID:        fmt.Sprintf("%s-%s%d", x.opts.Version, x.opts.Level, order),
		Type:         x.opts.SpecType,
		Order:        order,
		Scope:        ReplaceAngles(strings.Join(b.scope, "\n")),
		Requirements: b.requirements,
	}
}

// readRequirement reads the requirement held in column 1 of t.
func (x *RequirementExtractor) readRequirement(t *document.Table, order int) (domain.Requirement, error) {
	col := t.Column(requirementColumn)
	if len(col) < requirementColumnRows {
		return domain.Requirement{}, fmt.Errorf("%w: requirement table has %d cells in column %d, need %d",
			domain.ErrMalformedTableShape, len(col), requirementColumn+1, requirementColumnRows)
	}

	status := x.opts.DefaultStatus
	if s := strings.TrimSpace(col[4].Text()); s != "" {
		status = string([]rune(s)[:1])
	}

	return domain.Requirement{
		DocID:       ReplaceAngles(strings.TrimSpace(col[1].Text())),
		Title:       ReplaceAngles(col[0].Text()),
		Description: ReplaceAngles(col[2].Text()),
		Status:      ReplaceAngles(status),
		Type:        requirementTypeFeature,
		Order:       order,
	}, nil
}
