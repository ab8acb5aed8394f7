package rewrite_test

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wcc-go/packages/compiler/src/rewrite"
)

// run evaluates script and returns its completion value as JSON
func run(t *testing.T, script string) string {
	t.Helper()
	vm := goja.New()
	value, err := vm.RunString(script)
	require.NoError(t, err, script)
	return value.String()
}

func logAfter(w *rewrite.Writer) {
	w.WriteLine("log.push('after')")
}

func TestInjectedCallbacks(t *testing.T) {
	t.Run("should return the callback value from every return point", func(t *testing.T) {
		callback := "(x) => { log.push('body:' + x); if (x > 1) { return 'big' } return 'small' }"
		wrapper := rewrite.Inject(callback, "r0", logAfter)

		got := run(t, "const log = []; const f = "+wrapper+"; const out = [f(1), f(2)]; JSON.stringify({ out, log })")
		assert.Equal(t, `{"out":["small","big"],"log":["body:1","after","body:2","after"]}`, got)
	})

	t.Run("should run the statements once after the value is computed", func(t *testing.T) {
		callback := "() => { log.push('body'); return log.length }"
		wrapper := rewrite.Inject(callback, "r0", func(w *rewrite.Writer) {
			w.WriteLine("log.push('first')").WriteLine("log.push('second')")
		})

		got := run(t, "const log = []; const f = "+wrapper+"; const out = f(); JSON.stringify({ out, log })")
		assert.Equal(t, `{"out":1,"log":["body","first","second"]}`, got)
	})

	t.Run("should keep the value of canonicalized callbacks", func(t *testing.T) {
		cases := map[string]string{
			"handler":                    `["a",2]`,
			"() => ({ life: 42 })":       `{"life":42}`,
			"(a, b) => [a, b].join('-')": `"a-2"`,
			"function (a) { return a }":  `"a"`,
			"handler.bind(null)":         `["a",2]`,
		}
		for expr, want := range cases {
			callback, _ := canonicalize(t, expr)
			wrapper := rewrite.Inject(callback, "r0", logAfter)

			script := "const log = []; function handler(...args) { return args }\n" +
				"const out = (" + wrapper + ")('a', 2); JSON.stringify({ out, log })"
			assert.Equal(t, `{"out":`+want+`,"log":["after"]}`, run(t, script), expr)
		}
	})

	t.Run("should propagate exceptions without running the statements", func(t *testing.T) {
		wrapper := rewrite.Inject("() => { throw new Error('boom') }", "r0", logAfter)

		got := run(t, "const log = []; let msg = ''; try { ("+wrapper+")() } catch (e) { msg = e.message }; JSON.stringify({ msg, log })")
		assert.Equal(t, `{"msg":"boom","log":[]}`, got)
	})
}
