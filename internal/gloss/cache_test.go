package gloss

import (
	"reflect"
	"sync"
	"testing"
)

func TestCacheMatchesDecode(t *testing.T) {
	c := NewCache()
	for _, tok := range []string{"HELLO(2h)^", "CAT~DOG", "(Rh)RUN>", "HELLO(2h)^"} {
		if got, want := c.Decode(tok), Decode(tok); !reflect.DeepEqual(got, want) {
			t.Errorf("cache.Decode(%q) = %+v, want %+v", tok, got, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestCacheReturnsCopies(t *testing.T) {
	c := NewCache()
	first := c.Decode("CAT~DOG")
	first.Parts[0] = "MUTATED"

	second := c.Decode("CAT~DOG")
	if second.Parts[0] != "CAT" {
		t.Errorf("cached parts were mutated: %v", second.Parts)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache()
	tokens := []string{"A(2h)", "B~C", "D^", "E<", "F>"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tok := tokens[(i+j)%len(tokens)]
				if got := c.Decode(tok); got.Raw != tok {
					t.Errorf("Decode(%q).Raw = %q", tok, got.Raw)
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != len(tokens) {
		t.Errorf("Len = %d, want %d", c.Len(), len(tokens))
	}
}
