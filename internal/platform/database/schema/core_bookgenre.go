package schema

// BookGenreTable represents the 'book_genre' junction table
type BookGenreTable struct {
	Table   string
	BookID  string
	GenreID string
}

// BookGenre is the schema definition for book_genre
var BookGenre = BookGenreTable{
	Table:   "book_genre",
	BookID:  "book_id",
	GenreID: "genre_id",
}
