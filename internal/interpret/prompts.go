package interpret

import (
	"fmt"
	"strings"

	"github.com/skrylnikov/arcana/pkg/types"
)

// systemPrompts set the reader persona per locale. The interpretation
// itself must come back in the same locale as the request.
var systemPrompts = map[types.Locale]string{
	types.LocaleEN: "You are an expert Tarot card reader with deep knowledge of traditional " +
		"Tarot meanings and symbolism. Provide insightful, supportive and culturally " +
		"appropriate interpretations. Connect the cards meaningfully to the user's " +
		"question. Be empowering and avoid definitive predictions. Keep the " +
		"interpretation under 3500 characters, in clear paragraphs: one per card, " +
		"then an overall reading.",
	types.LocaleRU: "Вы эксперт по картам Таро с глубокими знаниями традиционных значений и " +
		"символики Таро. Давайте проницательные, поддерживающие толкования. Значимо " +
		"связывайте карты с вопросом пользователя. Избегайте категоричных " +
		"предсказаний. Держите толкование в пределах 3500 символов: понятные абзацы, " +
		"один на карту, затем общий вывод.",
	types.LocaleUK: "Ви експерт з карт Таро з глибоким знанням традиційних значень та " +
		"символіки Таро. Надавайте проникливі, підтримуючі тлумачення. Значуще " +
		"пов'язуйте карти з питанням користувача. Уникайте категоричних передбачень. " +
		"Тримайте тлумачення в межах 3500 символів: зрозумілі абзаци, один на карту, " +
		"потім загальний висновок.",
}

type promptLabels struct {
	question    string
	cards       string
	meaning     string
	keywords    string
	instruction string
}

var labels = map[types.Locale]promptLabels{
	types.LocaleEN: {
		question: "Question", cards: "Cards", meaning: "Traditional meaning", keywords: "Keywords",
		instruction: "Interpret each card in context, show how the cards relate to each other, and close with guidance addressing the question.",
	},
	types.LocaleRU: {
		question: "Вопрос", cards: "Карты", meaning: "Традиционное значение", keywords: "Ключевые слова",
		instruction: "Истолкуйте каждую карту в контексте, покажите, как карты связаны между собой, и завершите советом по вопросу.",
	},
	types.LocaleUK: {
		question: "Питання", cards: "Карти", meaning: "Традиційне значення", keywords: "Ключові слова",
		instruction: "Розтлумачте кожну карту в контексті, покажіть, як карти пов'язані між собою, і завершіть порадою щодо питання.",
	},
}

func systemPrompt(loc types.Locale) string {
	if p, ok := systemPrompts[loc]; ok {
		return p
	}
	return systemPrompts[types.LocaleEN]
}

// buildPrompt renders the user prompt for a request. Automated readings list
// cards under their spread positions; custom combinations are numbered.
func buildPrompt(req Request) string {
	loc := req.Locale
	if !types.IsValidLocale(loc) {
		loc = types.DefaultLocale
	}
	l := labels[loc]

	var b strings.Builder
	if req.Question != "" {
		fmt.Fprintf(&b, "%s: %s\n\n", l.question, req.Question)
	}
	fmt.Fprintf(&b, "%s:\n", l.cards)
	for i, card := range req.Cards {
		header := fmt.Sprintf("%d", i+1)
		if i < len(req.Positions) {
			header = req.Positions[i]
		}
		fmt.Fprintf(&b, "\n%s: %s\n", header, card.Name(loc))
		fmt.Fprintf(&b, "%s: %s\n", l.meaning, card.Meaning(loc))
		fmt.Fprintf(&b, "%s: %s\n", l.keywords, strings.Join(card.KeywordsFor(loc), ", "))
	}
	fmt.Fprintf(&b, "\n%s\n", l.instruction)
	return b.String()
}
