package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"phangs2caom2/internal/blueprint"
	"phangs2caom2/internal/caom"
	"phangs2caom2/internal/comments"
	"phangs2caom2/internal/fileutil"
	"phangs2caom2/internal/header"
	"phangs2caom2/internal/ledger"
	"phangs2caom2/internal/lineage"
	"phangs2caom2/internal/logging"
	"phangs2caom2/internal/naming"
	"phangs2caom2/internal/services"
)

const (
	lockSuffix     = ".lock"
	lockRetryDelay = 100 * time.Millisecond
	outputFileMode = 0o644
)

// Recorder persists run history. *ledger.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, collection, observationID, outputPath string) (*ledger.Run, error)
	RecordArtifact(ctx context.Context, artifact ledger.Artifact) error
	FinishRun(ctx context.Context, runID string, runErr error) error
}

// Request describes one ingestion run.
type Request struct {
	Collection string
	// ObservationID defaults to the observation ID decoded from the first URI.
	ObservationID string
	LocalPaths    []string
	Lineage       []string
	// InputPath optionally names an existing record to update.
	InputPath string
	// OutputPath receives the JSON record. Empty skips writing.
	OutputPath string
}

// Result summarises a run.
type Result struct {
	RunID       string
	Observation *caom.Observation
	OutputPath  string
	Ingested    int
	Skipped     int
}

// Processor runs ingestion requests.
type Processor struct {
	decoder        *naming.Decoder
	extractor      *comments.Extractor
	recorder       Recorder
	logger         *slog.Logger
	requireHeaders bool
}

// Option customises a Processor.
type Option func(*Processor)

// WithRecorder records runs in r.
func WithRecorder(r Recorder) Option {
	return func(p *Processor) { p.recorder = r }
}

// WithHeaderValidation toggles the requirement that every artifact has a
// local header.
func WithHeaderValidation(enabled bool) Option {
	return func(p *Processor) { p.requireHeaders = enabled }
}

// NewProcessor builds a processor around decoder.
func NewProcessor(decoder *naming.Decoder, logger *slog.Logger, opts ...Option) *Processor {
	logger = logging.NewComponentLogger(logger, "ingest")
	p := &Processor{
		decoder:        decoder,
		extractor:      comments.NewExtractor(logger),
		logger:         logger,
		requireHeaders: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ingests every artifact in req into a single observation record.
func (p *Processor) Run(ctx context.Context, req Request) (*Result, error) {
	uris, err := lineage.URIs(p.decoder, req.Lineage, req.LocalPaths)
	if err != nil {
		return nil, err
	}
	observationID := req.ObservationID
	if observationID == "" {
		first, err := p.decoder.Decode(uris[0])
		if err != nil {
			return nil, err
		}
		observationID = first.ObservationID()
	}
	headers := indexHeaders(req.LocalPaths)

	result := &Result{OutputPath: req.OutputPath}
	ctx = services.WithObservationID(ctx, observationID)

	if req.OutputPath != "" {
		unlock, err := lockOutput(ctx, req.OutputPath)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	if p.recorder != nil {
		run, err := p.recorder.BeginRun(ctx, req.Collection, observationID, req.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("begin run: %w", err)
		}
		result.RunID = run.ID
		ctx = services.WithRunID(ctx, run.ID)
	}
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("ingest started",
		logging.String(logging.FieldEventType, "ingest_started"),
		logging.Int("artifacts", len(uris)),
	)

	obs, runErr := p.load(req, observationID)
	if runErr == nil {
		result.Observation = obs
		runErr = p.validate(uris, headers)
	}
	if runErr == nil {
		runErr = p.process(ctx, obs, uris, headers, result)
	}

	if obs != nil && req.OutputPath != "" {
		if err := writeRecord(obs, req.OutputPath); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if p.recorder != nil && result.RunID != "" {
		// The run's own context may already be cancelled.
		if err := p.recorder.FinishRun(context.WithoutCancel(ctx), result.RunID, runErr); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("finish run: %w", err))
		}
	}

	if runErr != nil {
		logging.ErrorWithContext(logger, "ingest failed", "ingest_failed",
			logging.String(logging.FieldErrorKind, services.ErrorKind(runErr)),
			logging.Error(runErr),
			logging.String(logging.FieldErrorHint, hintFor(runErr)),
		)
		return result, runErr
	}
	logger.Info("ingest completed",
		logging.String(logging.FieldEventType, "ingest_completed"),
		logging.Int("ingested", result.Ingested),
		logging.Int("skipped", result.Skipped),
		logging.String("output", req.OutputPath),
	)
	return result, nil
}

func (p *Processor) load(req Request, observationID string) (*caom.Observation, error) {
	if req.InputPath == "" {
		return caom.New(req.Collection, observationID), nil
	}
	raw, err := os.ReadFile(req.InputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return caom.New(req.Collection, observationID), nil
		}
		return nil, fmt.Errorf("read input record: %w", err)
	}
	obs, err := caom.Parse(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ingest", "load", req.InputPath, err)
	}
	if obs == nil {
		return caom.New(req.Collection, observationID), nil
	}
	if obs.ObservationID != observationID {
		return nil, services.Wrap(services.ErrValidation, "ingest", "load",
			fmt.Sprintf("%s holds observation %q, not %q", req.InputPath, obs.ObservationID, observationID), nil)
	}
	return obs, nil
}

// validate checks that every non-preview artifact has a local header before
// anything is applied.
func (p *Processor) validate(uris []string, headers map[string]string) error {
	if !p.requireHeaders {
		return nil
	}
	for _, uri := range uris {
		name, err := p.decoder.Decode(uri)
		if err != nil {
			// Surfaced with its artifact record during processing.
			continue
		}
		if name.IsPreview() {
			continue
		}
		if _, ok := headers[name.FileID()]; !ok {
			return services.Wrap(services.ErrValidation, "ingest", "validate",
				fmt.Sprintf("no local header for %s", uri), nil)
		}
	}
	return nil
}

func (p *Processor) process(ctx context.Context, obs *caom.Observation, uris []string, headers map[string]string, result *Result) error {
	for _, uri := range uris {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := p.processOne(services.WithArtifactURI(ctx, uri), obs, uri, headers)
		if p.recorder != nil && result.RunID != "" {
			record.RunID = result.RunID
			if recErr := p.recorder.RecordArtifact(ctx, record); recErr != nil {
				return errors.Join(err, fmt.Errorf("record artifact: %w", recErr))
			}
		}
		if err != nil {
			return err
		}
		switch record.Status {
		case ledger.ArtifactSkipped:
			result.Skipped++
		default:
			result.Ingested++
		}
	}
	return nil
}

func (p *Processor) processOne(ctx context.Context, obs *caom.Observation, uri string, headers map[string]string) (ledger.Artifact, error) {
	record := ledger.Artifact{URI: uri, Status: ledger.ArtifactIngested}
	fail := func(err error) (ledger.Artifact, error) {
		record.Status = ledger.ArtifactFailed
		record.ErrorKind = services.ErrorKind(err)
		record.ErrorMessage = err.Error()
		return record, err
	}

	name, err := p.decoder.Decode(uri)
	if err != nil {
		return fail(err)
	}
	record.ProductID = name.ProductID()
	record.Telescope = name.Telescope()
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldProductID, name.ProductID()))

	if name.IsPreview() {
		record.Status = ledger.ArtifactSkipped
		logger.Debug("preview artifact skipped", logging.String(logging.FieldEventType, "artifact_skipped"))
		return record, nil
	}
	if name.ObservationID() != obs.ObservationID {
		return fail(services.Wrap(services.ErrValidation, "ingest", "decode",
			fmt.Sprintf("%s belongs to observation %q, not %q", uri, name.ObservationID(), obs.ObservationID), nil))
	}

	var hdr *header.Header
	if path, ok := headers[name.FileID()]; ok {
		record.HeaderPath = path
		if hdr, err = readPrimaryHeader(path); err != nil {
			return fail(err)
		}
		if record.HeaderSHA256, err = fileutil.SHA256File(path); err != nil {
			return fail(fmt.Errorf("hash header: %w", err))
		}
	}

	if err := blueprint.Accumulate(obs, name, hdr); err != nil {
		return fail(err)
	}
	if err := p.extractor.Apply(obs, name, hdr.Comments()); err != nil {
		return fail(err)
	}
	logger.Debug("artifact ingested",
		logging.String(logging.FieldEventType, "artifact_ingested"),
		logging.Bool("header", hdr != nil),
	)
	return record, nil
}

// indexHeaders maps file IDs onto local header paths. Later paths win.
func indexHeaders(paths []string) map[string]string {
	out := make(map[string]string, len(paths))
	for _, path := range paths {
		out[naming.RemoveExtensions(filepath.Base(path))] = path
	}
	return out
}

func readPrimaryHeader(path string) (*header.Header, error) {
	headers, err := header.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ingest", "read header", "", err)
	}
	if len(headers) == 0 {
		return nil, services.Wrap(services.ErrValidation, "ingest", "read header", fmt.Sprintf("%s has no HDUs", path), nil)
	}
	return headers[0], nil
}

func lockOutput(ctx context.Context, outputPath string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(outputPath + lockSuffix)
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire output lock: %s is held by another run", lock.Path())
	}
	return func() { _ = lock.Unlock() }, nil
}

func writeRecord(obs *caom.Observation, outputPath string) error {
	data, err := obs.Encode()
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, append(data, '\n'), outputFileMode); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func hintFor(err error) string {
	switch services.ErrorKind(err) {
	case "malformed_name":
		return "rename the file to <target>_<array>_<line>[_<product>] with a known array combination"
	case "missing_context":
		return "run the blueprint pass for this artifact before applying header comments"
	case "malformed_comment":
		return "fix the header COMMENT card named in the error"
	case "validation":
		return "pass --local for every artifact header or rerun with --no-validate"
	default:
		return "check logs for details"
	}
}
