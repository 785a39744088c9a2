package schema

// BookTable represents the 'books' table
type BookTable struct {
	Table         string
	ID            string
	Title         string
	AuthorID      string
	ISBN          string
	PublishedYear string
	CreatedAt     string
	CreatedByID   string
}

// Book is the schema definition for books
var Book = BookTable{
	Table:         "books",
	ID:            "id",
	Title:         "title",
	AuthorID:      "author_id",
	ISBN:          "isbn",
	PublishedYear: "published_year",
	CreatedAt:     "created_at",
	CreatedByID:   "created_by_id",
}

func (t BookTable) Columns() []string {
	return []string{t.ID, t.Title, t.AuthorID, t.ISBN, t.PublishedYear, t.CreatedAt, t.CreatedByID}
}
