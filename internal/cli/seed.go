package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/libraries"
	"github.com/mrlokans/catalog/internal/entities"
)

// SeedCommand fills the configured database with sample libraries and books.
type SeedCommand struct {
	Libraries       int
	BooksPerLibrary int
	DatabasePath    string
	Verbose         bool

	Out io.Writer
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{Out: os.Stdout}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.IntVar(&cmd.Libraries, "libraries", 3, "Number of libraries to create")
	fs.IntVar(&cmd.BooksPerLibrary, "books-per-library", 5, "Number of books to create in each library")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the SQLite database (defaults to DATABASE_PATH)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every created record")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create sample libraries and books in the configured database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -libraries 2 -books-per-library 10\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Libraries < 0 {
		return fmt.Errorf("-libraries must not be negative")
	}
	if cmd.BooksPerLibrary < 0 {
		return fmt.Errorf("-books-per-library must not be negative")
	}
	return nil
}

// Run opens the database described by cfg, overriding its path with -db
// when given, and creates the requested records.
func (cmd *SeedCommand) Run(cfg config.Database) error {
	if cmd.DatabasePath != "" {
		cfg.Driver = config.DriverSQLite
		cfg.Path = cmd.DatabasePath
	}

	db, err := database.NewDatabaseFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return cmd.seed(context.Background(), libraries.NewRepository(db.DB), books.NewRepository(db.DB))
}

func (cmd *SeedCommand) seed(ctx context.Context, libraryRepo *libraries.Repository, bookRepo *books.Repository) error {
	var createdBooks int
	for i := 1; i <= cmd.Libraries; i++ {
		library := &entities.Library{Name: fmt.Sprintf("Library %d", i)}
		if err := libraryRepo.Create(ctx, library); err != nil {
			return fmt.Errorf("failed to create library %q: %w", library.Name, err)
		}
		cmd.printf("  + library %d %q\n", library.ID, library.Name)

		for j := 1; j <= cmd.BooksPerLibrary; j++ {
			book := &entities.Book{
				Name:      fmt.Sprintf("Book %d.%d", i, j),
				LibraryID: library.ID,
			}
			if err := bookRepo.Create(ctx, book); err != nil {
				return fmt.Errorf("failed to create book %q: %w", book.Name, err)
			}
			createdBooks++
			cmd.printf("    + book %d %q\n", book.ID, book.Name)
		}
	}

	fmt.Fprintf(cmd.Out, "Seeded %d libraries and %d books\n", cmd.Libraries, createdBooks)
	return nil
}

func (cmd *SeedCommand) printf(format string, args ...any) {
	if cmd.Verbose {
		fmt.Fprintf(cmd.Out, format, args...)
	}
}
