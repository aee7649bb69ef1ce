// Package stubapi is a self-contained implementation of the content backend
// contract, backed by SQLite. It exists for local development and browser
// tests, so the site can run without the hosted backend.
package stubapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mmmweb/internal/domain/faq"
	"mmmweb/internal/domain/importantdate"
	"mmmweb/internal/domain/keynote"
	"mmmweb/internal/domain/news"
	"mmmweb/internal/domain/organization"
	"mmmweb/internal/domain/page"
)

// Store persists all backend entities in one SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS page (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	component TEXT NOT NULL DEFAULT '',
	document TEXT NOT NULL DEFAULT '{"sections":[]}'
);
CREATE TABLE IF NOT EXISTS news (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	page_id INTEGER NOT NULL DEFAULT 0,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	published_at TEXT NOT NULL DEFAULT '',
	link_text TEXT NOT NULL DEFAULT '',
	link_url TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS keynote (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	page_id INTEGER NOT NULL DEFAULT 0,
	name TEXT NOT NULL,
	photo_url TEXT NOT NULL DEFAULT '',
	affiliation TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS important_date (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	due_date TEXT NOT NULL,
	title TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS faq (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL DEFAULT '',
	sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS member (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	affiliation TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	photo_url TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS user (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	is_admin INTEGER NOT NULL DEFAULT 0
);
`

// Migrate creates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// --- pages ---

func scanPage(row interface{ Scan(...any) error }) (page.Page, error) {
	var p page.Page
	var doc string
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Component, &doc); err != nil {
		return page.Page{}, err
	}
	if err := json.Unmarshal([]byte(doc), &p.JSON); err != nil {
		return page.Page{}, fmt.Errorf("corrupt page document %d: %w", p.ID, err)
	}
	return p, nil
}

// PageBySlug returns the page stored under slug.
func (s *Store) PageBySlug(ctx context.Context, slug string) (page.Page, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, slug, title, component, document FROM page WHERE slug = ?", slug)
	return scanPage(row)
}

// SavePage inserts or replaces a page, returning the stored row.
func (s *Store) SavePage(ctx context.Context, p page.Page) (page.Page, error) {
	doc, err := json.Marshal(p.JSON)
	if err != nil {
		return page.Page{}, err
	}
	if p.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO page (slug, title, component, document) VALUES (?, ?, ?, ?)",
			p.Slug, p.Title, p.Component, string(doc))
		if err != nil {
			return page.Page{}, err
		}
		p.ID, err = res.LastInsertId()
		return p, err
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE page SET slug=?, title=?, component=?, document=? WHERE id=?",
		p.Slug, p.Title, p.Component, string(doc), p.ID)
	return p, err
}

// --- news ---

// ListNews returns every news item, newest first.
func (s *Store) ListNews(ctx context.Context) ([]news.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, page_id, title, content, published_at, link_text, link_url FROM news ORDER BY published_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []news.Item
	for rows.Next() {
		var n news.Item
		if err := rows.Scan(&n.ID, &n.PageID, &n.Title, &n.Content, &n.PublishedAt, &n.LinkText, &n.LinkURL); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// SaveNews inserts or updates a news item.
func (s *Store) SaveNews(ctx context.Context, n news.Item) (news.Item, error) {
	if n.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO news (page_id, title, content, published_at, link_text, link_url) VALUES (?, ?, ?, ?, ?, ?)",
			n.PageID, n.Title, n.Content, n.PublishedAt, n.LinkText, n.LinkURL)
		if err != nil {
			return news.Item{}, err
		}
		n.ID, err = res.LastInsertId()
		return n, err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE news SET page_id=?, title=?, content=?, published_at=?, link_text=?, link_url=? WHERE id=?",
		n.PageID, n.Title, n.Content, n.PublishedAt, n.LinkText, n.LinkURL, n.ID)
	return n, err
}

// DeleteNews removes a news item.
func (s *Store) DeleteNews(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM news WHERE id = ?", id)
	return err
}

// --- keynotes ---

// ListKeynotes returns all keynotes in insertion order.
func (s *Store) ListKeynotes(ctx context.Context) ([]keynote.Keynote, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, page_id, name, photo_url, affiliation, title, bio, content, date, time FROM keynote ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []keynote.Keynote
	for rows.Next() {
		var k keynote.Keynote
		if err := rows.Scan(&k.ID, &k.PageID, &k.Name, &k.PhotoURL, &k.Affiliation, &k.Title, &k.Bio, &k.Content, &k.Date, &k.Time); err != nil {
			return nil, err
		}
		items = append(items, k)
	}
	return items, rows.Err()
}

// SaveKeynote inserts or updates a keynote.
func (s *Store) SaveKeynote(ctx context.Context, k keynote.Keynote) (keynote.Keynote, error) {
	if k.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO keynote (page_id, name, photo_url, affiliation, title, bio, content, date, time) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			k.PageID, k.Name, k.PhotoURL, k.Affiliation, k.Title, k.Bio, k.Content, k.Date, k.Time)
		if err != nil {
			return keynote.Keynote{}, err
		}
		k.ID, err = res.LastInsertId()
		return k, err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE keynote SET page_id=?, name=?, photo_url=?, affiliation=?, title=?, bio=?, content=?, date=?, time=? WHERE id=?",
		k.PageID, k.Name, k.PhotoURL, k.Affiliation, k.Title, k.Bio, k.Content, k.Date, k.Time, k.ID)
	return k, err
}

// DeleteKeynote removes a keynote.
func (s *Store) DeleteKeynote(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM keynote WHERE id = ?", id)
	return err
}

// --- important dates ---

// ListImportantDates returns all deadlines ordered by due date.
func (s *Store) ListImportantDates(ctx context.Context) ([]importantdate.Date, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, due_date, title FROM important_date ORDER BY due_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []importantdate.Date
	for rows.Next() {
		var d importantdate.Date
		if err := rows.Scan(&d.ID, &d.DueDate, &d.Title); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// SaveImportantDate inserts or updates a deadline.
func (s *Store) SaveImportantDate(ctx context.Context, d importantdate.Date) (importantdate.Date, error) {
	if d.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO important_date (due_date, title) VALUES (?, ?)", d.DueDate, d.Title)
		if err != nil {
			return importantdate.Date{}, err
		}
		d.ID, err = res.LastInsertId()
		return d, err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE important_date SET due_date=?, title=? WHERE id=?", d.DueDate, d.Title, d.ID)
	return d, err
}

// DeleteImportantDate removes a deadline.
func (s *Store) DeleteImportantDate(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM important_date WHERE id = ?", id)
	return err
}

// --- faqs ---

// ListFaqs returns all FAQ entries by sort order.
func (s *Store) ListFaqs(ctx context.Context) ([]faq.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question, answer, sort_order FROM faq ORDER BY sort_order, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []faq.Item
	for rows.Next() {
		var f faq.Item
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Order); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// SaveFaq inserts or updates a FAQ entry.
func (s *Store) SaveFaq(ctx context.Context, f faq.Item) (faq.Item, error) {
	if f.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO faq (question, answer, sort_order) VALUES (?, ?, ?)", f.Question, f.Answer, f.Order)
		if err != nil {
			return faq.Item{}, err
		}
		f.ID, err = res.LastInsertId()
		return f, err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE faq SET question=?, answer=?, sort_order=? WHERE id=?", f.Question, f.Answer, f.Order, f.ID)
	return f, err
}

// DeleteFaq removes a FAQ entry.
func (s *Store) DeleteFaq(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM faq WHERE id = ?", id)
	return err
}

// --- members ---

// ListMembers returns all committee members in insertion order, which
// doubles as category display order.
func (s *Store) ListMembers(ctx context.Context) ([]organization.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, affiliation, category, photo_url FROM member ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []organization.Member
	for rows.Next() {
		var m organization.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Affiliation, &m.Category, &m.PhotoURL); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// SaveMember inserts or updates a member.
func (s *Store) SaveMember(ctx context.Context, m organization.Member) (organization.Member, error) {
	if m.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO member (name, affiliation, category, photo_url) VALUES (?, ?, ?, ?)",
			m.Name, m.Affiliation, m.Category, m.PhotoURL)
		if err != nil {
			return organization.Member{}, err
		}
		m.ID, err = res.LastInsertId()
		return m, err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE member SET name=?, affiliation=?, category=?, photo_url=? WHERE id=?",
		m.Name, m.Affiliation, m.Category, m.PhotoURL, m.ID)
	return m, err
}

// DeleteMember removes a member.
func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	return err
}

// RenameCategory moves every member of oldName into newName.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE member SET category=? WHERE category=?", newName, oldName)
	return err
}

// DeleteCategory removes all members of a category.
func (s *Store) DeleteCategory(ctx context.Context, category string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE category = ?", category)
	return err
}

// --- users ---

// User is a backend account row.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
}

// UserByEmail looks up a user for authentication.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, is_admin FROM user WHERE email = ?", email)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin); err != nil {
		return User{}, err
	}
	return u, nil
}

// UserByID looks up a user by primary key.
func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, is_admin FROM user WHERE id = ?", id)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin); err != nil {
		return User{}, err
	}
	return u, nil
}

// SaveUser inserts a user account.
func (s *Store) SaveUser(ctx context.Context, u User) (User, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO user (email, name, password_hash, is_admin) VALUES (?, ?, ?, ?) ON CONFLICT(email) DO UPDATE SET name=excluded.name, password_hash=excluded.password_hash, is_admin=excluded.is_admin",
		u.Email, u.Name, u.PasswordHash, u.IsAdmin)
	if err != nil {
		return User{}, err
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		u.ID = id
	}
	return u, nil
}
