package language

import (
	"testing"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

func TestDetectByExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     models.Language
	}{
		{"wallet.fc", models.LanguageFunc},
		{"wallet.FC", models.LanguageFunc},
		{"lib.func", models.LanguageFunc},
		{"pool.tact", models.LanguageTact},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename, ""); got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestDetectByContent(t *testing.T) {
	funcSource := `;; simple wallet
() recv_internal(int msg_value, cell in_msg, slice in_msg_body) impure {
}`
	tactSource := `import "@stdlib/deploy";

contract Counter with Deployable {
    init() {}
    receive("increment") {}
}`

	if got := Detect("wallet.txt", funcSource); got != models.LanguageFunc {
		t.Errorf("expected func, got %s", got)
	}
	if got := Detect("counter.txt", tactSource); got != models.LanguageTact {
		t.Errorf("expected tact, got %s", got)
	}
}

func TestDetectUnknown(t *testing.T) {
	if got := Detect("readme.md", "just some prose"); got != models.LanguageUnknown {
		t.Errorf("expected unknown, got %s", got)
	}
}

func TestExtensionWinsOverContent(t *testing.T) {
	// Extension is authoritative even when content looks like the other
	// language.
	tactLooking := "contract X { receive() {} }"
	if got := Detect("odd.fc", tactLooking); got != models.LanguageFunc {
		t.Errorf("expected func from extension, got %s", got)
	}
}
