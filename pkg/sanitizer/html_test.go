package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ehsanpg/mazzehabi/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script injection", `<p>سلام</p><script>alert('xss')</script>`, "سلام"},
		{"nested tags", `<div><p>nested <b>text</b></p></div>`, "nested text"},
		{"event handler", `<img src="x" onerror="alert(1)">`, ""},
		{"javascript link", `<a href="javascript:alert(1)">click</a>`, "click"},
		{"entities decoded", `a & b < c`, "a & b < c"},
		{"plain persian", "طراحی وب‌سایت", "طراحی وب‌سایت"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "علی", sanitizer.Text("  <b>علی</b>\n", 0))
	require.Equal(t, "خانه", sanitizer.Text("خانه مضه‌حبی", 4))
	require.Equal(t, "", sanitizer.Text("   ", 10))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "abc", sanitizer.Truncate("abc", 3))
	require.Equal(t, "ab", sanitizer.Truncate("abc", 2))
	require.Equal(t, "abc", sanitizer.Truncate("abc", 0))
	require.Equal(t, "سل", sanitizer.Truncate("سلام", 2))
}
