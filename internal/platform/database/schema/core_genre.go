package schema

// GenreTable represents the 'genres' table
type GenreTable struct {
	Table string
	ID    string
	Name  string
}

// Genre is the schema definition for genres
var Genre = GenreTable{
	Table: "genres",
	ID:    "id",
	Name:  "name",
}
