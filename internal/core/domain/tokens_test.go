package domain

import "testing"

func TestTokenUsageAdd(t *testing.T) {
	a := TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30}
	b := TokenUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}
	c := TokenUsage{PromptTokens: 100, CompletionTokens: 200, TotalTokens: 300}

	want := TokenUsage{PromptTokens: 111, CompletionTokens: 222, TotalTokens: 333}

	if got := a.Add(b).Add(c); got != want {
		t.Errorf("(a+b)+c = %+v, want %+v", got, want)
	}

	if got := a.Add(b.Add(c)); got != want {
		t.Errorf("a+(b+c) = %+v, want %+v", got, want)
	}

	if got := a.Add(c.Add(b)); got != want {
		t.Errorf("a+(c+b) = %+v, want %+v", got, want)
	}
}

func TestTokenUsageAddZero(t *testing.T) {
	a := TokenUsage{PromptTokens: 5, CompletionTokens: 7, TotalTokens: 12}

	if got := a.Add(TokenUsage{}); got != a {
		t.Errorf("a+zero = %+v, want %+v", got, a)
	}
}
