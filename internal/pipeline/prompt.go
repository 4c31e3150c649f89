package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-fusion-kit/internal/builder"
	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/prompts"
	"github.com/shouni/go-fusion-kit/pkg/runner"
)

// ExecutePrompt は API を呼ばずに、コンパイルされたプロンプトを w に出力するのだ。
// ペルソナは --subject の ":personaID" か --persona から取るのだ。
func ExecutePrompt(appCtx *builder.AppContext, w io.Writer) error {
	opts := appCtx.Options

	quality, err := domain.ParseQuality(opts.Quality)
	if err != nil {
		return err
	}

	personaIDs := opts.Personas
	if len(personaIDs) == 0 {
		for _, spec := range opts.Subjects {
			_, id := ParseSubjectSpec(spec)
			personaIDs = append(personaIDs, id)
		}
	}

	compiled, err := appCtx.Workflow.BuildPromptRunner().Run(runner.PromptRequest{
		ScenarioID:         opts.Scenario,
		PersonaIDs:         personaIDs,
		Quality:            quality,
		BackgroundSupplied: opts.Background != "",
	})
	if err != nil {
		return err
	}

	writeCompiled(w, compiled)
	return nil
}

func writeCompiled(w io.Writer, c prompts.Compiled) {
	fmt.Fprintf(w, "# scenario: %s (%s)\n", c.Scenario.Title, c.Scenario.ID)
	fmt.Fprintf(w, "# quality: %s\n", c.Options.Quality)
	fmt.Fprintf(w, "# background: %t", c.Options.HasBackground)
	if c.Options.BackgroundDropped {
		fmt.Fprint(w, " (not used by this scenario)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintln(w, c.Prompt)
}

// ExecuteCatalog はペルソナ（グループ別）とシナリオの一覧を w に出力するのだ。
func ExecuteCatalog(appCtx *builder.AppContext, w io.Writer) {
	cat := appCtx.Workflow.Catalog()

	fmt.Fprintln(w, "Personas:")
	for _, g := range cat.GroupedPersonas() {
		name := string(g.Group)
		if name == "" {
			name = "general"
		}
		fmt.Fprintf(w, "  [%s]\n", name)
		for _, p := range g.Personas {
			fmt.Fprintf(w, "    %-28s %s\n", p.ID, p.Name)
		}
	}

	fmt.Fprintln(w, "Scenarios:")
	for _, s := range cat.ListScenarios() {
		var notes []string
		if s.ForcedQuality != "" {
			notes = append(notes, "quality: "+string(s.ForcedQuality))
		}
		if s.NoBackground {
			notes = append(notes, "no background")
		}
		if s.RequiredSubjects > 0 {
			notes = append(notes, fmt.Sprintf("exactly %d subjects", s.RequiredSubjects))
		}
		line := fmt.Sprintf("  %-20s %s", s.ID, s.Title)
		if len(notes) > 0 {
			line += " (" + strings.Join(notes, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}
