package service

import (
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"breadth_bot/internal/models"
)

func TestAggregatorPercentages(t *testing.T) {
	a := NewAggregator()
	for i := 0; i < 7; i++ {
		a.Observe("2024-03-01", models.CategoryPositive)
	}
	for i := 0; i < 3; i++ {
		a.Observe("2024-03-01", models.CategoryNegative)
	}

	rows := a.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.Positive != 7 || r.Negative != 3 {
		t.Fatalf("counts = +%d/-%d, want +7/-3", r.Positive, r.Negative)
	}
	if r.PositivePct != 70.0 || r.NegativePct != 30.0 {
		t.Fatalf("pcts = %v/%v, want 70/30", r.PositivePct, r.NegativePct)
	}
	if r.Net() != 4 {
		t.Fatalf("net = %d, want 4", r.Net())
	}
}

func TestAggregatorSkipsNeutralOnlyDates(t *testing.T) {
	a := NewAggregator()
	a.Observe("2024-03-01", models.CategoryNeutral)
	a.Observe("2024-03-01", models.CategoryNeutral)
	a.Observe("2024-03-02", models.CategoryPositive)
	a.Observe("2024-03-02", models.CategoryNeutral)

	rows := a.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (neutral-only date must be dropped)", len(rows))
	}
	if rows[0].Date != "2024-03-02" {
		t.Fatalf("date = %s, want 2024-03-02", rows[0].Date)
	}
	// нейтральные вклады не раздувают знаменатель
	if rows[0].PositivePct != 100.0 {
		t.Fatalf("pct = %v, want 100", rows[0].PositivePct)
	}
}

func TestAggregatorOrderIndependent(t *testing.T) {
	type obs struct {
		date string
		cat  models.Category
	}
	base := []obs{
		{"2024-03-01", models.CategoryPositive},
		{"2024-03-01", models.CategoryNegative},
		{"2024-03-02", models.CategoryPositive},
		{"2024-03-02", models.CategoryPositive},
		{"2024-03-03", models.CategoryNegative},
		{"2024-03-03", models.CategoryNeutral},
	}

	a := NewAggregator()
	for _, o := range base {
		a.Observe(o.date, o.cat)
	}
	want := a.Rows()

	rnd := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]obs(nil), base...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		b := NewAggregator()
		for _, o := range shuffled {
			b.Observe(o.date, o.cat)
		}
		if got := b.Rows(); !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: rows differ after shuffle:\ngot  %+v\nwant %+v", trial, got, want)
		}
	}
}

func TestAggregatorConcurrentObserve(t *testing.T) {
	a := NewAggregator()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				a.Observe("2024-03-01", models.CategoryPositive)
				a.Observe("2024-03-02", models.CategoryNegative)
			}
		}()
	}
	wg.Wait()

	rows := a.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Positive != 800 || rows[1].Negative != 800 {
		t.Fatalf("counts = %d/%d, want 800/800", rows[0].Positive, rows[1].Negative)
	}
}
