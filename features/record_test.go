package features

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leafFields counts the non-embedded fields of a struct type, descending
// into embedded structs.
func leafFields(t reflect.Type) int {
	n := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			n += leafFields(f.Type)
			continue
		}
		n++
	}
	return n
}

func TestSchemaCoversRecord(t *testing.T) {
	require.Equal(t, leafFields(reflect.TypeOf(Record{})), len(Columns))
	require.Len(t, Record{}.Values(), len(Columns))

	seen := map[string]bool{}
	for _, c := range Columns {
		require.False(t, seen[c], "duplicate column %s", c)
		seen[c] = true
	}
}

func TestNewRecord(t *testing.T) {
	lex := Lexical{Person1Sg: 3, Person1Pl: 1, DeltaFirstPerson: 2}
	syn := Syntactic{Tokens: 4, Sentences: 1, MeanSentLength: 4}
	rd := ReadabilityScores{GunningFog: 7.5, LexicalDiversity: 10}

	r := NewRecord("I,  me and  myself", lex, syn, rd)
	vals := r.Values()
	m := make(map[string]float64, len(Columns))
	for i, c := range Columns {
		m[c] = vals[i]
	}

	assert.Equal(t, 4.0, m["n_words"])
	assert.Equal(t, 18.0, m["segment_length"])
	assert.Equal(t, 3.0, m["person_1sg"])
	assert.Equal(t, m["person_1sg"]-m["person_1pl"], m["delta_first_person"])
	assert.Equal(t, 7.5, m["gunning_fog"])
	assert.Equal(t, 10.0, m["lexical_diversity"])

	// lexical block comes first, in pronoun order
	want := []float64{0, 0, 0, 0, 3, 1, 0, 0, 2}
	if diff := cmp.Diff(want, vals[:len(want)]); diff != "" {
		t.Errorf("Values() order mismatch (-want +got):\n%s", diff)
	}
}

func TestFallbackRecord(t *testing.T) {
	r := FallbackRecord("héllo")
	for i, v := range r.Values() {
		switch Columns[i] {
		case "n_words":
			assert.Equal(t, 1.0, v)
		case "segment_length":
			assert.Equal(t, 5.0, v)
		default:
			assert.True(t, math.IsNaN(v), Columns[i])
		}
	}
}
