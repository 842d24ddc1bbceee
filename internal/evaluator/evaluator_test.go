package evaluator

import (
	"testing"

	"github.com/lox/pokertable/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		expected Category
	}{
		{"royal flush", "AsKsQsJsTs", RoyalFlush},
		{"straight flush", "9s8s7s6s5s", StraightFlush},
		{"steel wheel", "As2s3s4s5s", StraightFlush},
		{"four of a kind", "AsAhAdAcKs", FourOfAKind},
		{"full house", "AsAhAdKsKh", FullHouse},
		{"flush", "AsKsQs8s6s", Flush},
		{"straight", "AsKhQdJcTs", Straight},
		{"wheel", "Ah2c3d4s5h", Straight},
		{"no wraparound", "QsKhAd2c3s", HighCard},
		{"three of a kind", "AsAhAdKs9c", ThreeOfAKind},
		{"two pair", "AsAhKdKs9c", TwoPair},
		{"pair", "AsAhKdQs9c", Pair},
		{"high card", "AsKhQd9s7c", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Classify(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifyRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := Classify(deck.MustParseCards("AsKsQsJs"))
	require.ErrorIs(t, err, ErrInvalidHand)

	_, err = Classify(deck.MustParseCards("AsAsQsJsTs"))
	require.ErrorIs(t, err, ErrInvalidHand)

	assert.Panics(t, func() { MustClassify(nil) })
}

func TestShortDeckStraights(t *testing.T) {
	t.Parallel()

	lowStraight := deck.MustParseCards("Ah6c7d8s9h")
	got, err := ShortDeckRanking.Classify(lowStraight)
	require.NoError(t, err)
	assert.Equal(t, Straight, got)

	got, err = StandardRanking.Classify(lowStraight)
	require.NoError(t, err)
	assert.Equal(t, HighCard, got)

	high, ok := StraightHigh([]deck.Rank{deck.Ace, deck.Six, deck.Seven, deck.Eight, deck.Nine}, deck.Six)
	require.True(t, ok)
	assert.Equal(t, deck.Nine, high)
}

func TestWheelLosesToSixHighStraight(t *testing.T) {
	t.Parallel()

	wheel, err := Describe(deck.MustParseCards("Ah2c3d4s5h"), StandardRanking)
	require.NoError(t, err)
	sixHigh, err := Describe(deck.MustParseCards("2c3d4s5h6d"), StandardRanking)
	require.NoError(t, err)

	assert.Equal(t, deck.Five, wheel.StraightHigh)
	assert.Equal(t, -1, Compare(wheel, sixHigh))
	assert.Equal(t, 1, Compare(sixHigh, wheel))

	steelWheel, err := Describe(deck.MustParseCards("As2s3s4s5s"), StandardRanking)
	require.NoError(t, err)
	sixHighFlush, err := Describe(deck.MustParseCards("2h3h4h5h6h"), StandardRanking)
	require.NoError(t, err)
	assert.Equal(t, -1, Compare(steelWheel, sixHighFlush))
}

func TestRoyalFlushesTie(t *testing.T) {
	t.Parallel()

	spades, err := Describe(deck.MustParseCards("AsKsQsJsTs"), StandardRanking)
	require.NoError(t, err)
	hearts, err := Describe(deck.MustParseCards("AhKhQhJhTh"), StandardRanking)
	require.NoError(t, err)

	assert.Equal(t, 0, Compare(spades, hearts))
	assert.Equal(t, "hands tie", Explain(spades, hearts))
}

func TestCompareTieBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    string
		ranking Ranking
		want    int
	}{
		{"higher pair", "KsKh9d7c2s", "QsQhAdKc2d", StandardRanking, 1},
		{"pair kicker", "KsKhAd7c2s", "KdKcQd9c8d", StandardRanking, 1},
		{"two pair top pair", "AsAh3d3c2s", "KsKhQdQcJs", StandardRanking, 1},
		{"two pair bottom pair", "AsAh4d4c2s", "AdAc3s3hKs", StandardRanking, 1},
		{"two pair kicker", "AsAh4d4cKs", "AdAc4s4hQs", StandardRanking, 1},
		{"trips over kickers", "3s3h3dAcKs", "2s2h2dAdKd", StandardRanking, 1},
		{"full house trips first", "3s3h3d2c2s", "2h2d2sAcAs", StandardRanking, 1},
		{"full house pair second", "AsAhAdKcKs", "AcAdAsQcQs", StandardRanking, 1},
		{"flush lexicographic", "AsJs9s5s3s", "AhJh9h5h2h", StandardRanking, 1},
		{"high card tie", "AsJs9d5c3h", "AhJh9c5d3s", StandardRanking, 0},
		{"quads kicker", "9s9h9d9cAs", "9s9h9d9cKs", StandardRanking, 1},
		{"flush beats full house short deck", "AsJs9s8s7s", "KsKhKdQcQs", ShortDeckRanking, 1},
		{"full house beats flush standard", "AsJs9s8s7s", "KsKhKdQcQs", StandardRanking, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Describe(deck.MustParseCards(tt.a), tt.ranking)
			require.NoError(t, err)
			b, err := Describe(deck.MustParseCards(tt.b), tt.ranking)
			require.NoError(t, err)

			assert.Equal(t, tt.want, Compare(a, b))
			assert.Equal(t, -tt.want, Compare(b, a))
		})
	}
}

func TestDescribeFields(t *testing.T) {
	t.Parallel()

	fh, err := Describe(deck.MustParseCards("2h2d2sAcAs"), StandardRanking)
	require.NoError(t, err)
	assert.Equal(t, FullHouse, fh.Category)
	assert.Equal(t, []deck.Rank{deck.Two, deck.Ace}, fh.FullHouseRanks)
	assert.Equal(t, []deck.Rank{deck.Ace, deck.Ace, deck.Two, deck.Two, deck.Two}, fh.Ranks)

	tp, err := Describe(deck.MustParseCards("4s4hKdKc9s"), StandardRanking)
	require.NoError(t, err)
	assert.Equal(t, []deck.Rank{deck.King, deck.Four}, tp.PairRanks)
	assert.Equal(t, []deck.Rank{deck.Nine}, tp.Kickers)
}

func TestCategoryStrengthTables(t *testing.T) {
	t.Parallel()

	for c := HighCard; c <= RoyalFlush; c++ {
		assert.Equal(t, int(c), c.Strength())
	}
	assert.Greater(t, Flush.ShortDeckStrength(), FullHouse.ShortDeckStrength())
	assert.Less(t, Flush.Strength(), FullHouse.Strength())
	assert.Equal(t, ShortDeckRanking, RankingFor(deck.Short))
}
