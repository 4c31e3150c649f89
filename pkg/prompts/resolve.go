package prompts

import (
	"fmt"

	"github.com/shouni/go-fusion-kit/pkg/domain"
)

// Options はシナリオ単位の上書きを適用した後の、実際にコンパイルへ渡す値です。
type Options struct {
	Quality       domain.Quality
	HasBackground bool
	// BackgroundDropped は背景が渡されたがシナリオが受け付けないため除外されたことを示します。
	// 背景そのものは呼び出し側の状態に残ります。
	BackgroundDropped bool
}

// Resolve はシナリオの制約（品質の強制、背景の非対応、被写体数の指定）を適用します。
func Resolve(s domain.Scenario, requested domain.Quality, backgroundSupplied bool, subjects int) (Options, error) {
	if requested == "" {
		requested = domain.DefaultQuality
	}
	if !requested.Valid() {
		return Options{}, domain.NewInputError(fmt.Sprintf("unknown quality %q", requested))
	}
	if subjects < domain.MinSubjects || subjects > domain.MaxSubjects {
		return Options{}, domain.NewInputError(fmt.Sprintf("please upload between %d and %d subject images (got %d)", domain.MinSubjects, domain.MaxSubjects, subjects))
	}
	if !s.AcceptsSubjects(subjects) {
		return Options{}, domain.NewInputError(fmt.Sprintf("scenario %q requires exactly %d subjects (got %d)", s.Title, s.RequiredSubjects, subjects))
	}

	opts := Options{
		Quality:       requested,
		HasBackground: backgroundSupplied && s.AllowsBackground(),
	}
	opts.BackgroundDropped = backgroundSupplied && !opts.HasBackground
	if s.ForcedQuality != "" {
		opts.Quality = s.ForcedQuality
	}
	return opts, nil
}
