package prompt

import (
	"fmt"

	"ai-copilot-be/pkg/completion"
	"ai-copilot-be/pkg/completion/language"
)

// CursorMarker is the placeholder the model is asked to replace.
const CursorMarker = "[CURSOR_HERE]"

// Builder assembles completion prompts with bounded context windows.
type Builder struct {
	maxBefore int
	maxAfter  int
}

func NewBuilder(maxBefore, maxAfter int) *Builder {
	return &Builder{
		maxBefore: maxBefore,
		maxAfter:  maxAfter,
	}
}

// Build renders the completion prompt for the given mode. Inline requests get
// the terse template built around the language's one-line instruction; menu
// requests get the fuller template with explicit best-practices instructions.
func (b *Builder) Build(lang language.Context, mode completion.Mode, before, after, projectContext string) string {
	before = Before(before, b.maxBefore)
	after = After(after, b.maxAfter)

	if mode == completion.ModeInline {
		return b.buildInline(lang, before, after, projectContext)
	}
	return b.buildMenu(lang, before, after, projectContext)
}

func (b *Builder) buildInline(lang language.Context, before, after, projectContext string) string {
	context := ""
	if projectContext != "" {
		context = fmt.Sprintf("PROJECT CONTEXT:\n%s\n\n", projectContext)
	}

	return fmt.Sprintf("%s\n\n%s"+"```%s\n%s%s%s\n```"+"\n\nCOMPLETION:",
		lang.Instruction,
		context,
		lang.Name,
		before, CursorMarker, after,
	)
}

func (b *Builder) buildMenu(lang language.Context, before, after, projectContext string) string {
	return fmt.Sprintf(`You are a %s coding assistant.

PROJECT CONTEXT:
%s

CODE TO COMPLETE:
`+"```%s\n%s%s%s\n```"+`

INSTRUCTIONS:
- Replace %s with appropriate %s code
- Follow %s best practices and syntax
- Provide only the code that should replace %s
- Keep the completion concise and relevant
- Do not include explanations or comments

COMPLETION:`,
		lang.Name,
		projectContext,
		lang.Name,
		before, CursorMarker, after,
		CursorMarker, lang.Name,
		lang.Name,
		CursorMarker,
	)
}
