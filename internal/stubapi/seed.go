package stubapi

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"mmmweb/internal/domain/faq"
	"mmmweb/internal/domain/importantdate"
	"mmmweb/internal/domain/organization"
	"mmmweb/internal/domain/page"
)

// seedPages are the site pages created on first run. Documents start with a
// short placeholder text section; real content is authored in the editor.
var seedPages = []struct {
	slug, title string
}{
	{"home", "MMM 2026"},
	{"conference", "Conference"},
	{"calls", "Calls"},
	{"authors", "Author Information"},
	{"attending", "Attending"},
	{"organization", "Organization"},
	{"register", "Registration"},
}

// Seed populates an empty database with the site pages, a default admin
// account and a little sample content. Safe to run repeatedly: rows are only
// inserted when the relevant table is empty.
func (s *Store) Seed(ctx context.Context, adminEmail, adminPassword string) error {
	if _, err := s.PageBySlug(ctx, "home"); err != nil {
		for _, sp := range seedPages {
			p := page.Page{
				Slug:  sp.slug,
				Title: sp.title,
				JSON: page.Document{Sections: []page.Section{
					page.NewTextSection("<p>" + sp.title + " content coming soon.</p>"),
				}},
			}
			if _, err := s.SavePage(ctx, p); err != nil {
				return err
			}
		}
		slog.Info("stubapi_event", "event", "pages_seeded", "count", len(seedPages))
	}

	if _, err := s.UserByEmail(ctx, adminEmail); err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := s.SaveUser(ctx, User{
			Email:        adminEmail,
			Name:         "Site Admin",
			PasswordHash: string(hash),
			IsAdmin:      true,
		}); err != nil {
			return err
		}
		slog.Info("stubapi_event", "event", "admin_seeded", "email", adminEmail)
	}

	if dates, err := s.ListImportantDates(ctx); err == nil && len(dates) == 0 {
		samples := []importantdate.Date{
			{DueDate: "2026-09-15", Title: "Paper submission deadline"},
			{DueDate: "2026-11-01", Title: "Notification of acceptance"},
			{DueDate: "2026-11-20", Title: "Camera-ready deadline"},
		}
		for _, d := range samples {
			if _, err := s.SaveImportantDate(ctx, d); err != nil {
				return err
			}
		}
	}

	if faqs, err := s.ListFaqs(ctx); err == nil && len(faqs) == 0 {
		if _, err := s.SaveFaq(ctx, faq.Item{
			Question: "When does registration open?",
			Answer:   "Registration opens with the **notification of acceptance**.",
			Order:    1,
		}); err != nil {
			return err
		}
	}

	if members, err := s.ListMembers(ctx); err == nil && len(members) == 0 {
		if _, err := s.SaveMember(ctx, organization.Member{
			Name:        "To Be Announced",
			Affiliation: "",
			Category:    "General Chairs",
		}); err != nil {
			return err
		}
	}

	return nil
}
