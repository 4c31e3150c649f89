package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-fusion-kit/internal/builder"
	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/orchestrator"
	"github.com/shouni/go-fusion-kit/pkg/runner"
)

// ExecuteFuse は、被写体画像を読み込んでバッチを実行し、成果物を保存するのだ。
// パッケージングに失敗しても、各スロットの結果は w に出力するのだ。
func ExecuteFuse(ctx context.Context, appCtx *builder.AppContext, w io.Writer) error {
	opts := appCtx.Options

	req, err := buildBatchRequest(appCtx)
	if err != nil {
		return err
	}

	fuseRunner, err := appCtx.Workflow.BuildFuseRunner(ctx)
	if err != nil {
		return fmt.Errorf("FuseRunner の構築に失敗したのだ: %w", err)
	}

	slog.Info("合成を開始するのだ！",
		"subjects", len(req.Subjects),
		"background", req.Background != nil,
		"scenario", req.ScenarioID,
		"quality", req.Quality,
		"model", appCtx.Config.ImageModel)

	result, runErr := fuseRunner.Run(ctx, runner.FuseRequest{
		Batch:       req,
		RetryRounds: opts.RetryRounds,
		OutputDir:   opts.OutputDir,
	})
	writeSummary(w, result)
	logMetrics(appCtx)
	if runErr != nil {
		return runErr
	}

	if opts.SaveImages {
		paths, err := appCtx.Publisher.SaveImages(ctx, result.Slots, opts.OutputDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(w, "saved: %s\n", p)
		}
	}

	fmt.Fprintf(w, "archive: %s (%d images)\n", result.Publish.ArchivePath, result.Publish.Count)
	if result.DebugPath != "" {
		fmt.Fprintf(w, "debug records: %s\n", result.DebugPath)
	}
	return nil
}

// buildBatchRequest は CLI オプションから BatchRequest を組み立てるのだ。
func buildBatchRequest(appCtx *builder.AppContext) (orchestrator.BatchRequest, error) {
	opts := appCtx.Options

	quality, err := domain.ParseQuality(opts.Quality)
	if err != nil {
		return orchestrator.BatchRequest{}, err
	}

	subjects := make([]domain.Subject, 0, len(opts.Subjects))
	for _, spec := range opts.Subjects {
		path, personaID := ParseSubjectSpec(spec)
		if personaID != "" {
			if _, ok := appCtx.Workflow.Catalog().FindPersona(personaID); !ok {
				return orchestrator.BatchRequest{}, domain.NewInputError(fmt.Sprintf("unknown persona %q", personaID))
			}
		}
		img, err := domain.LoadImage(path)
		if err != nil {
			return orchestrator.BatchRequest{}, err
		}
		subjects = append(subjects, domain.Subject{Image: img, PersonaID: personaID})
	}

	req := orchestrator.BatchRequest{
		Subjects:   subjects,
		ScenarioID: opts.Scenario,
		Quality:    quality,
		Debug:      opts.Debug || appCtx.Config.Debug,
	}
	if opts.Background != "" {
		bg, err := domain.LoadImage(opts.Background)
		if err != nil {
			return orchestrator.BatchRequest{}, err
		}
		req.Background = &bg
	}
	return req, nil
}

// ParseSubjectSpec は "path[:personaID]" 形式の指定をパスとペルソナ ID に分解するのだ。
// 区切り以降にパス区切り文字が含まれる場合（Windows のドライブ指定など）はパスの一部とみなすのだ。
func ParseSubjectSpec(spec string) (path, personaID string) {
	i := strings.LastIndex(spec, ":")
	if i <= 0 || i == len(spec)-1 {
		return spec, ""
	}
	suffix := spec[i+1:]
	if strings.ContainsAny(suffix, `/\`) {
		return spec, ""
	}
	return spec[:i], suffix
}

func writeSummary(w io.Writer, result runner.FuseResult) {
	for _, slot := range result.Slots {
		switch slot.Status {
		case domain.StatusSuccess:
			fmt.Fprintf(w, "slot %d: success (attempts: %d)\n", slot.Index+1, slot.Attempts)
			if slot.Result != nil && slot.Result.ResponseText != "" {
				fmt.Fprintf(w, "  model: %s\n", slot.Result.ResponseText)
			}
		default:
			fmt.Fprintf(w, "slot %d: %s (attempts: %d): %s\n", slot.Index+1, slot.Status, slot.Attempts, slot.Err)
			if g := domain.Guidance(slot.ErrKind); g != "" {
				fmt.Fprintf(w, "  hint: %s\n", g)
			}
		}
	}
}

// logMetrics は実行中に記録したメトリクスをデバッグログに出すのだ。
func logMetrics(appCtx *builder.AppContext) {
	families, err := appCtx.Metrics.Gather()
	if err != nil {
		slog.Debug("Failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]any, 0, len(m.GetLabel())*2+2)
			labels = append(labels, "metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				labels = append(labels, "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				labels = append(labels, "count", m.GetHistogram().GetSampleCount(), "sum", m.GetHistogram().GetSampleSum())
			}
			slog.Debug("Metric", labels...)
		}
	}
}
