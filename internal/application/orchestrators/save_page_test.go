package orchestrators

import (
	"context"
	"strings"
	"testing"

	"mmmweb/internal/domain/page"
)

type fakePages struct {
	created []page.Page
	updated []page.Page
}

func (f *fakePages) CreatePage(_ context.Context, p page.Page) (page.Page, error) {
	p.ID = 100
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePages) UpdatePage(_ context.Context, id int64, p page.Page) (page.Page, error) {
	f.updated = append(f.updated, p)
	return p, nil
}

func TestExecuteSavePage_CreateVsUpdate(t *testing.T) {
	fp := &fakePages{}
	deps := SavePageDeps{Pages: fp}

	doc := page.Document{Sections: []page.Section{page.NewTextSection("<p>hello</p>")}}

	created, err := ExecuteSavePage(context.Background(), SavePageInput{
		Page: page.Page{Slug: "attending", Title: "Attending", JSON: doc},
	}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 100 || len(fp.created) != 1 {
		t.Errorf("created = %+v", created)
	}

	_, err = ExecuteSavePage(context.Background(), SavePageInput{
		Page: page.Page{ID: 100, Slug: "attending", Title: "Attending", JSON: doc},
	}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(fp.updated) != 1 {
		t.Errorf("updated = %d calls, want 1", len(fp.updated))
	}
}

func TestExecuteSavePage_NormalizesTextSections(t *testing.T) {
	fp := &fakePages{}
	p := page.Page{
		Slug: "home", Title: "Home",
		JSON: page.Document{Sections: []page.Section{
			page.NewTextSection(`<p onclick="steal()">hi</p><script>alert(1)</script>`),
		}},
	}

	saved, err := ExecuteSavePage(context.Background(), SavePageInput{Page: p}, SavePageDeps{Pages: fp})
	if err != nil {
		t.Fatal(err)
	}
	got := saved.JSON.Sections[0].Text.HTML
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Errorf("stored HTML not sanitized: %q", got)
	}
	if !strings.Contains(got, "hi") {
		t.Errorf("stored HTML lost content: %q", got)
	}
}

func TestExecuteSavePage_InvalidPageNeverHitsBackend(t *testing.T) {
	fp := &fakePages{}
	_, err := ExecuteSavePage(context.Background(), SavePageInput{
		Page: page.Page{Slug: "Bad Slug!", Title: "x"},
	}, SavePageDeps{Pages: fp})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(fp.created)+len(fp.updated) != 0 {
		t.Error("backend called for invalid page")
	}
}
