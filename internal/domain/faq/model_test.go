package faq_test

import (
	"testing"

	"mmmweb/internal/domain/faq"
)

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    faq.Item
		wantErr bool
	}{
		{name: "valid", item: faq.Item{Question: "When is the deadline?", Answer: "See important dates.", Order: 1}},
		{name: "empty question", item: faq.Item{Answer: "a"}, wantErr: true},
		{name: "empty answer", item: faq.Item{Question: "q"}, wantErr: true},
		{name: "whitespace only", item: faq.Item{Question: " ", Answer: " "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSortByOrder(t *testing.T) {
	items := []faq.Item{
		{ID: 1, Question: "c", Answer: "a", Order: 3},
		{ID: 2, Question: "a", Answer: "a", Order: 1},
		{ID: 3, Question: "b", Answer: "a", Order: 2},
	}
	faq.SortByOrder(items)
	for i, wantID := range []int64{2, 3, 1} {
		if items[i].ID != wantID {
			t.Errorf("position %d = id %d, want %d", i, items[i].ID, wantID)
		}
	}
}

func TestNextOrder(t *testing.T) {
	t.Run("empty list starts at 1", func(t *testing.T) {
		if got := faq.NextOrder(nil); got != 1 {
			t.Errorf("NextOrder(nil) = %d, want 1", got)
		}
	})
	t.Run("one past the last item", func(t *testing.T) {
		items := []faq.Item{{Order: 1}, {Order: 4}}
		if got := faq.NextOrder(items); got != 5 {
			t.Errorf("NextOrder() = %d, want 5", got)
		}
	})
}
