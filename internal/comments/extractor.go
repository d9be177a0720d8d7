package comments

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"phangs2caom2/internal/caom"
	"phangs2caom2/internal/logging"
	"phangs2caom2/internal/naming"
	"phangs2caom2/internal/services"
)

const commentKeyword = "COMMENT"

// LineError reports a recognised comment whose payload could not be parsed.
type LineError struct {
	Line  string
	Field string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s: %s from %q: %v", services.ErrMalformedComment, e.Field, e.Line, e.Err)
}

func (e *LineError) Unwrap() []error {
	return []error{services.ErrMalformedComment, e.Err}
}

// Extractor applies header comment rules to an observation record.
type Extractor struct {
	logger *slog.Logger
	rules  []rule
}

// NewExtractor returns an extractor using the PHANGS rule table.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		logger: logging.NewComponentLogger(logger, "comments"),
		rules:  defaultRules,
	}
}

// Classify returns the name of the rule that would handle line.
func (e *Extractor) Classify(line string) (string, bool) {
	if r, ok := e.match(normalize(line)); ok {
		return r.name, true
	}
	return "", false
}

func (e *Extractor) match(line string) (rule, bool) {
	for _, r := range e.rules {
		if strings.Contains(line, r.marker) {
			return r, true
		}
	}
	return rule{}, false
}

// Apply mutates obs in place from the header comment lines of the artifact
// described by name. The plane must already exist; the artifact is only
// needed for time-interval lines, and its absence is reported after every
// other line has been applied.
func (e *Extractor) Apply(obs *caom.Observation, name naming.Name, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if obs == nil {
		return services.Wrap(services.ErrMissingContext, "comments", "select plane", "nil observation", nil)
	}
	plane := obs.Plane(name.ProductID())
	if plane == nil {
		return services.Wrap(services.ErrMissingContext, "comments", "select plane",
			fmt.Sprintf("no plane %q in observation %q", name.ProductID(), obs.ObservationID), nil)
	}
	plane.EnsureProvenance(provenanceName)

	t := &target{obs: obs, plane: plane}
	if artifact := plane.Artifact(name.FileURI()); artifact != nil {
		t.chunk = artifact.FirstChunk()
	}

	logger := e.logger.With(
		logging.String(logging.FieldProductID, name.ProductID()),
		logging.String(logging.FieldArtifactURI, name.FileURI()),
	)

	var missing error
	for _, raw := range lines {
		line := normalize(raw)
		r, ok := e.match(line)
		if !ok {
			continue
		}
		err := r.apply(t, line)
		switch {
		case err == nil:
			logger.Debug("header comment applied", logging.String("rule", r.name))
		case errors.Is(err, errNoChunk):
			if missing == nil {
				missing = services.Wrap(services.ErrMissingContext, "comments", "time bounds",
					fmt.Sprintf("no artifact chunk for %q in plane %q", name.FileURI(), name.ProductID()), nil)
			}
		default:
			return &LineError{Line: raw, Field: r.name, Err: err}
		}
	}
	return missing
}

// normalize drops a leading COMMENT keyword so card text and raw card lines
// tokenize the same way.
func normalize(line string) string {
	line = strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(line, commentKeyword); ok && (rest == "" || rest[0] == ' ') {
		line = strings.TrimSpace(rest)
	}
	return line
}
