package features

import (
	"strings"
	"unicode/utf8"
)

// Columns is the fixed feature schema, in output order. Record.Values
// returns values in the same order.
var Columns = []string{
	"n_applauses",
	"n_crosstalks",
	"n_opponent_mentions",
	"n_target_mentions",
	"person_1sg",
	"person_1pl",
	"person_2",
	"person_3",
	"delta_first_person",
	"n_negations",
	"n_future_markers",
	"n_tokens",
	"n_words",
	"n_sents",
	"mean_sent_length",
	"std_sent_length",
	"n_words_before_main_verb",
	"mean_clause_embeddings",
	"automated_readability_index",
	"coleman_liau_index",
	"dale_chall_score",
	"n_difficult_words",
	"flesch_kincaid_grade",
	"flesch_reading_ease",
	"gunning_fog",
	"linsear_write",
	"smog_index",
	"text_standard",
	"readability",
	"lexical_diversity",
	"segment_length",
}

// Record is the flat feature vector of one segment. Counts are whole
// numbers; NaN means the value is undefined or could not be computed,
// which is not the same as 0.
type Record struct {
	Lexical
	Words int
	Syntactic
	ReadabilityScores
	SegmentLength int
}

// NewRecord merges the partial feature sets of one segment.
func NewRecord(text string, lex Lexical, syn Syntactic, rd ReadabilityScores) Record {
	return Record{
		Lexical:           lex,
		Words:             len(strings.Fields(text)),
		Syntactic:         syn,
		ReadabilityScores: rd,
		SegmentLength:     utf8.RuneCountInString(text),
	}
}

// FallbackRecord is the record of a segment for which nothing could be
// computed beyond its raw length.
func FallbackRecord(text string) Record {
	return NewRecord(text, NaNLexical(), NaNSyntactic(), NaNReadability())
}

func (r Record) Values() []float64 {
	return []float64{
		r.Applauses,
		r.Crosstalks,
		r.OpponentMentions,
		r.TargetMentions,
		r.Person1Sg,
		r.Person1Pl,
		r.Person2,
		r.Person3,
		r.DeltaFirstPerson,
		r.Negations,
		r.FutureMarkers,
		r.Tokens,
		float64(r.Words),
		r.Sentences,
		r.MeanSentLength,
		r.StdSentLength,
		r.WordsBeforeMainVerb,
		r.MeanClauseEmbeddings,
		r.AutomatedReadabilityIndex,
		r.ColemanLiauIndex,
		r.DaleChallScore,
		r.DifficultWords,
		r.FleschKincaidGrade,
		r.FleschReadingEase,
		r.GunningFog,
		r.LinsearWrite,
		r.SMOGIndex,
		r.TextStandard,
		r.Readability,
		r.LexicalDiversity,
		float64(r.SegmentLength),
	}
}
