//go:build property
// +build property

package nav

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildSidebar turns a list of group sizes into a raw sidebar with unique
// paths. A size of zero yields a top-level leaf, anything else a group with
// that many children.
func buildSidebar(sizes []int) ([]any, []string) {
	var sidebar []any
	var want []string
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("/p%d", n)
	}
	for i, size := range sizes {
		if size == 0 {
			p := next()
			sidebar = append(sidebar, p)
			want = append(want, p)
			continue
		}
		children := make([]any, 0, size)
		for j := 0; j < size; j++ {
			p := next()
			children = append(children, p)
			want = append(want, p)
		}
		sidebar = append(sidebar, map[string]any{"title": fmt.Sprintf("Group %d", i), "children": children})
	}
	return sidebar, want
}

func TestResolveProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	sizes := gen.SliceOf(gen.IntRange(0, 4)).SuchThat(func(s []int) bool { return len(s) > 0 })

	// Property: flatten preserves declared order
	properties.Property("order preservation", prop.ForAll(
		func(sizes []int) bool {
			sidebar, want := buildSidebar(sizes)
			cfg, err := Resolve(doc("Docs", sidebar))
			if err != nil {
				return false
			}
			return reflect.DeepEqual(Flatten(cfg), want)
		},
		sizes,
	))

	// Property: repeating any path yields DuplicatePath naming it
	properties.Property("duplicate detection", prop.ForAll(
		func(sizes []int, pick int) bool {
			sidebar, paths := buildSidebar(sizes)
			dup := paths[pick%len(paths)]
			sidebar = append(sidebar, dup)
			_, err := Resolve(doc("Docs", sidebar))
			var ce *ConfigError
			if !errors.As(err, &ce) {
				return false
			}
			return ce.Kind == KindDuplicatePath && ce.Path == dup
		},
		sizes,
		gen.IntRange(0, 1000),
	))

	// Property: resolving twice yields equal configs and snapshots
	properties.Property("idempotence", prop.ForAll(
		func(sizes []int) bool {
			sidebar, _ := buildSidebar(sizes)
			raw := doc("Docs", sidebar)
			a, errA := Resolve(raw)
			b, errB := Resolve(raw)
			if errA != nil || errB != nil {
				return false
			}
			sa, _ := a.Snapshot()
			sb, _ := b.Snapshot()
			return reflect.DeepEqual(a, b) && sa == sb
		},
		sizes,
	))

	properties.TestingRun(t)
}
