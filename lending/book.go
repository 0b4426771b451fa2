package lending

// Format is the physical format of a catalog item.
type Format string

// Supported book formats.
const (
	FormatPaperback Format = "PAPERBACK"
	FormatHardcover Format = "HARDCOVER"
	FormatAudio     Format = "AUDIO"
)

// Book is a catalog item that can be reserved.
// Available is the only field the engine ever mutates, and only while
// canceling a reservation.
type Book struct {
	ISBN      ISBNString `json:"isbn"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Publisher string     `json:"publisher"`
	Format    Format     `json:"format"`
	Available bool       `json:"available"`
}
