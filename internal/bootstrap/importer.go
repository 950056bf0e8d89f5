package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/clubreviewapp/clubreview-server/internal/service"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

// Importer loads the upstream club datasets and a demo account through
// the regular services, so codes are normalized and tags resolved the
// same way API writes are.
type Importer struct {
	clubs  *service.ClubService
	auth   *service.AuthService
	logger *slog.Logger
}

// NewImporter creates an importer over the club and auth services.
func NewImporter(clubs *service.ClubService, auth *service.AuthService, logger *slog.Logger) *Importer {
	return &Importer{
		clubs:  clubs,
		auth:   auth,
		logger: logger,
	}
}

// Result summarizes one import run.
type Result struct {
	Created int
	Skipped int
}

// ImportFiles loads clubs from the JSON dataset at jsonPath and the
// scraped listing at htmlPath. Either path may be empty to skip that
// dataset.
func (imp *Importer) ImportFiles(ctx context.Context, jsonPath, htmlPath string) (*Result, error) {
	var records []ClubRecord

	if jsonPath != "" {
		f, err := os.Open(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("open clubs json: %w", err)
		}
		parsed, err := ParseClubsJSON(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	if htmlPath != "" {
		f, err := os.Open(htmlPath)
		if err != nil {
			return nil, fmt.Errorf("open club listing html: %w", err)
		}
		parsed, err := ParseClubsHTML(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	return imp.Import(ctx, records)
}

// Import creates one club per record. Records without a code get a
// generated one; a record colliding with an existing club is skipped and
// counted, not fatal.
func (imp *Importer) Import(ctx context.Context, records []ClubRecord) (*Result, error) {
	gen := NewCodeGenerator()
	for _, r := range records {
		if r.Code != "" {
			gen.Reserve(r.Code)
		}
	}

	result := &Result{}
	for _, r := range records {
		code := r.Code
		if code == "" {
			code = gen.Generate(r.Name)
		}

		_, err := imp.clubs.CreateClub(ctx, service.CreateClubInput{
			Code:        code,
			Name:        r.Name,
			Description: r.Description,
			Tags:        r.Tags,
		})
		if err != nil {
			if isConflict(err) {
				imp.logger.Warn("club already present, skipping", "code", code, "name", r.Name)
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("create club %q: %w", code, err)
		}
		result.Created++
	}

	imp.logger.Info("club import finished", "created", result.Created, "skipped", result.Skipped)
	return result, nil
}

// SeedDemoUser registers the stock demo account. An already-registered
// handle is not an error.
func (imp *Importer) SeedDemoUser(ctx context.Context, password string) error {
	year := 3
	_, err := imp.auth.Signup(ctx, service.SignupRequest{
		Handle:   "josh",
		Name:     "Josh",
		Password: password,
		Year:     &year,
		Email:    "josh123@gmail.com",
	})
	if err != nil {
		if isConflict(err) {
			imp.logger.Warn("demo user already present, skipping")
			return nil
		}
		return fmt.Errorf("seed demo user: %w", err)
	}

	imp.logger.Info("demo user created", "handle", "josh")
	return nil
}

func isConflict(err error) bool {
	var storeErr *store.Error
	return errors.As(err, &storeErr) && storeErr.Code == store.ErrAlreadyExists.Code
}
