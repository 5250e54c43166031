package translate_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ehsanpg/mazzehabi/internal/translate"
)

func TestWidget(t *testing.T) {
	t.Parallel()

	t.Run("renders loader and init options", func(t *testing.T) {
		t.Parallel()

		w := translate.New(translate.Config{Enabled: true, Languages: []string{"fa", "en", "ar"}})

		var buf bytes.Buffer
		require.NoError(t, w.Render(context.Background(), &buf))
		out := buf.String()

		require.Contains(t, out, `<div id="google_translate_element" hidden hx-preserve="true"></div>`)
		require.Contains(t, out, "function googleTranslateElementInit(){")
		require.Contains(t, out, `"pageLanguage":"fa"`)
		require.Contains(t, out, `"includedLanguages":"fa,en,ar"`)
		require.Contains(t, out, `"autoDisplay":false`)
		require.Contains(t, out, "InlineLayout.SIMPLE")
		require.Contains(t, out, `},"google_translate_element");}`)
		require.Contains(t, out, `src="https://translate.google.com/translate_a/element.js?cb=googleTranslateElementInit"`)
	})

	t.Run("disabled renders nothing", func(t *testing.T) {
		t.Parallel()

		w := translate.New(translate.Config{Enabled: false})
		require.False(t, w.Enabled())

		var buf bytes.Buffer
		require.NoError(t, w.Render(context.Background(), &buf))
		require.Empty(t, buf.String())
	})

	t.Run("nil widget is disabled", func(t *testing.T) {
		t.Parallel()

		var w *translate.Widget
		require.False(t, w.Enabled())
		require.Empty(t, w.Element())
	})
}
