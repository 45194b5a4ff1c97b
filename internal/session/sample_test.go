package session

import (
	"testing"

	"github.com/abhisek/stockmaster/internal/questions"
)

func TestSample_CountAndUniqueness(t *testing.T) {
	pool := testQuestions(10)
	src := SeededSource(1)

	for n := 1; n <= 10; n++ {
		got := Sample(pool, n, src)
		if len(got) != n {
			t.Fatalf("Sample(%d) returned %d", n, len(got))
		}
		seen := map[string]bool{}
		for _, q := range got {
			if seen[q.ID] {
				t.Fatalf("duplicate %s in sample of %d", q.ID, n)
			}
			seen[q.ID] = true
		}
	}
}

func TestSample_MoreThanPool(t *testing.T) {
	pool := testQuestions(4)
	got := Sample(pool, 10, SeededSource(7))

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	seen := map[string]bool{}
	for _, q := range got {
		seen[q.ID] = true
	}
	for _, q := range pool {
		if !seen[q.ID] {
			t.Errorf("%s missing from full-pool sample", q.ID)
		}
	}
}

func TestSample_EmptyInputs(t *testing.T) {
	if got := Sample(nil, 5, SeededSource(1)); got != nil {
		t.Errorf("empty pool: got %d questions", len(got))
	}
	if got := Sample(testQuestions(3), 0, SeededSource(1)); got != nil {
		t.Errorf("zero count: got %d questions", len(got))
	}
}

func TestSample_DoesNotModifyPool(t *testing.T) {
	pool := testQuestions(6)
	before := make([]string, len(pool))
	for i, q := range pool {
		before[i] = q.ID
	}
	_ = Sample(pool, 3, SeededSource(3))
	for i, q := range pool {
		if q.ID != before[i] {
			t.Fatalf("pool[%d] = %s, want %s", i, q.ID, before[i])
		}
	}
}

func TestSample_Fairness(t *testing.T) {
	const (
		poolSize = 10
		count    = 3
		trials   = 20000
	)
	pool := testQuestions(poolSize)
	src := SeededSource(42)

	hits := map[string]int{}
	for i := 0; i < trials; i++ {
		for _, q := range Sample(pool, count, src) {
			hits[q.ID]++
		}
	}

	// Each question is expected count/poolSize of the time; allow 10%.
	want := float64(trials) * count / poolSize
	for _, q := range pool {
		got := float64(hits[q.ID])
		if got < want*0.9 || got > want*1.1 {
			t.Errorf("%s drawn %v times, want about %v", q.ID, got, want)
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6, 7, 8}
	b := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(a, SeededSource(9))
	Shuffle(b, SeededSource(9))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave %v and %v", a, b)
		}
	}
}

func TestFilterPool(t *testing.T) {
	repo := questions.MustRepository([]questions.Question{
		mcQuestion("rsi", "RSI", 0),
		mcQuestion("fib", "Fibonacci", 1),
		sideQuestion("sr", questions.SupportResistance, questions.Buy),
		{
			ID: "adv", Prompt: "p", Category: questions.ChartPatterns, Difficulty: questions.Advanced,
			Answer: questions.BinaryChoice{Correct: questions.Sell},
		},
	})

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", AllQuestions(), []string{"rsi", "fib", "sr", "adv"}},
		{"category", InCategory("RSI"), []string{"rsi"}},
		{"difficulty", AtDifficulty(questions.Advanced), []string{"adv"}},
		{"group", InGroup(questions.SupportResistance), []string{"fib", "sr"}},
		{"empty", InCategory(questions.ReversalPatterns), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Pool(repo)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d questions, want %d", len(got), len(tt.want))
			}
			for i, q := range got {
				if q.ID != tt.want[i] {
					t.Errorf("[%d] = %s, want %s", i, q.ID, tt.want[i])
				}
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", AllQuestions(), false},
		{"all", AllQuestions(), false},
		{"category:Support & Resistance", InCategory(questions.SupportResistance), false},
		{"difficulty:Advanced", AtDifficulty(questions.Advanced), false},
		{"group:Trend Analysis", InGroup(questions.TrendAnalysis), false},
		{"difficulty:expert", Filter{}, true},
		{"category:", Filter{}, true},
		{"colour:red", Filter{}, true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if !tt.wantErr {
			if back, _ := ParseFilter(got.String()); back != got {
				t.Errorf("round trip of %q gave %+v", tt.in, back)
			}
		}
	}
}
