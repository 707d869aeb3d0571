package perception

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/observability"
	"github.com/your-org/vibecheck/internal/queue"
	"github.com/your-org/vibecheck/internal/storage"
	"github.com/your-org/vibecheck/internal/vision"
)

// VibeSummarizer turns a perception profile into a scored vibe analysis.
type VibeSummarizer interface {
	SummarizeVibe(ctx context.Context, profile *Profile) (*models.VibeAnalysis, error)
}

// Pipeline runs every signal collector over one uploaded media item, merges
// whatever succeeded into the media's metadata, asks the summarizer for a vibe
// analysis, and announces completion on the event stream.
type Pipeline struct {
	collectors []Collector
	aggregator *Aggregator
	summarizer VibeSummarizer
	db         *storage.PostgresStore
	minio      *storage.MinIOStore
	producer   *queue.Producer

	detector   *vision.Detector
	embedder   *vision.Embedder
	attributes *vision.AttributePredictor
	objects    *vision.ObjectDetector
}

// NewPipeline initialises all ONNX models and returns a ready pipeline.
func NewPipeline(
	cfg config.VisionConfig,
	db *storage.PostgresStore,
	minio *storage.MinIOStore,
	producer *queue.Producer,
	summarizer VibeSummarizer,
) (*Pipeline, error) {

	detPath := filepath.Join(cfg.ModelsDir, "det_10g.onnx")
	embPath := filepath.Join(cfg.ModelsDir, "w600k_r50.onnx")
	attrPath := filepath.Join(cfg.ModelsDir, "genderage.onnx")
	objPath := filepath.Join(cfg.ModelsDir, "yolov8n.onnx")

	slog.Info("loading face detection model", "path", detPath)
	det, err := vision.NewDetector(detPath, float32(cfg.FaceThreshold), nil)
	if err != nil {
		return nil, fmt.Errorf("load face detector: %w", err)
	}

	slog.Info("loading embedding model", "path", embPath)
	emb, err := vision.NewEmbedder(embPath, nil)
	if err != nil {
		det.Close()
		return nil, fmt.Errorf("load embedder: %w", err)
	}

	slog.Info("loading attribute model", "path", attrPath)
	attrs, err := vision.NewAttributePredictor(attrPath, nil)
	if err != nil {
		det.Close()
		emb.Close()
		return nil, fmt.Errorf("load attributes: %w", err)
	}

	slog.Info("loading object detection model", "path", objPath)
	objs, err := vision.NewObjectDetector(objPath, float32(cfg.ObjectThreshold), nil)
	if err != nil {
		det.Close()
		emb.Close()
		attrs.Close()
		return nil, fmt.Errorf("load object detector: %w", err)
	}

	slog.Info("perception pipeline ready")

	return &Pipeline{
		collectors: []Collector{
			NewFaceCollector(det, attrs, minio),
			NewPostureCollector(det),
			NewFashionCollector(objs, minio),
			NewObjectCollector(objs),
			NewEmbeddingCollector(det, emb),
		},
		aggregator: NewAggregator(db),
		summarizer: summarizer,
		db:         db,
		minio:      minio,
		producer:   producer,
		detector:   det,
		embedder:   emb,
		attributes: attrs,
		objects:    objs,
	}, nil
}

// Process handles one analysis task end to end. Collector failures are logged
// and skipped; the media keeps whatever sections did land.
func (p *Pipeline) Process(ctx context.Context, task models.AnalysisTask) error {
	media, err := p.db.GetMedia(ctx, task.MediaID)
	if err != nil {
		return fmt.Errorf("load media %s: %w", task.MediaID, err)
	}
	if media == nil {
		slog.Warn("analysis task for unknown media", "media_id", task.MediaID)
		return nil
	}

	data, err := p.minio.GetObject(ctx, media.StorageKey)
	if err != nil {
		return fmt.Errorf("fetch media object: %w", err)
	}

	img, err := vision.DecodeImage(data)
	if err != nil {
		return fmt.Errorf("decode media %s: %w", media.ID, err)
	}

	var signals []string
	for _, c := range p.collectors {
		start := time.Now()
		section, err := c.Collect(ctx, img, media)
		observability.SignalDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			observability.SignalsCollected.WithLabelValues(c.Name(), "error").Inc()
			slog.Warn("signal collector failed", "signal", c.Name(), "media_id", media.ID, "error", err)
			continue
		}
		observability.SignalsCollected.WithLabelValues(c.Name(), "ok").Inc()

		if section.IsEmpty() {
			continue
		}

		if err := p.db.MergePatchMetadata(ctx, media.ID, section); err != nil {
			return fmt.Errorf("merge %s section: %w", c.Name(), err)
		}
		if section.Embedding != nil {
			if err := p.db.SetMediaEmbedding(ctx, media.ID, section.Embedding); err != nil {
				slog.Warn("store embedding vector", "media_id", media.ID, "error", err)
			}
		}
		signals = append(signals, c.Name())
	}

	profile, err := p.aggregator.BuildProfile(ctx, media.ID)
	if err != nil {
		slog.Warn("no profile after collection", "media_id", media.ID, "error", err)
		observability.MediaProcessed.WithLabelValues("no_signal").Inc()
		return nil
	}

	if p.summarizer != nil {
		analysis, err := p.summarizer.SummarizeVibe(ctx, profile)
		if err != nil {
			slog.Warn("vibe summarizer failed", "media_id", media.ID, "error", err)
		} else if err := p.db.MergePatchMetadata(ctx, media.ID, models.MediaMetadata{VibeAnalysis: analysis}); err != nil {
			return fmt.Errorf("merge vibe analysis: %w", err)
		} else {
			signals = append(signals, "vibe")
		}
	}

	event := models.AnalysisEvent{
		MediaID:      media.ID,
		UserID:       media.UserID,
		Signals:      signals,
		OverallScore: profile.Summaries.OverallScore,
		CompletedAt:  time.Now().UTC(),
	}
	if err := p.producer.PublishEvent(ctx, media.UserID.String(), event); err != nil {
		slog.Error("publish analysis event", "media_id", media.ID, "error", err)
	}

	observability.MediaProcessed.WithLabelValues("ok").Inc()
	return nil
}

// Close releases all ONNX sessions.
func (p *Pipeline) Close() {
	if p.detector != nil {
		p.detector.Close()
	}
	if p.embedder != nil {
		p.embedder.Close()
	}
	if p.attributes != nil {
		p.attributes.Close()
	}
	if p.objects != nil {
		p.objects.Close()
	}
}
