package iso

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Default upstream CSV datasets. Both carry a header row; the first two
// columns are code and display name.
const (
	DefaultLanguagesURL = "https://raw.githubusercontent.com/datasets/language-codes/master/data/language-codes.csv"
	DefaultRegionsURL   = "https://raw.githubusercontent.com/datasets/country-codes/master/data/country-codes.csv"
)

// Entry is one selectable code with its display name.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Lists serves the language and region choices offered by wizard dropdowns.
// Both lists come from remote CSV datasets and are cached for a day; a
// fetch failure after a successful load keeps serving the cached list.
type Lists struct {
	LanguagesURL string
	RegionsURL   string
	Client       *http.Client
	Cache        *cache.Cache
	Logger       *logrus.Logger
}

func NewLists(logger *logrus.Logger) *Lists {
	return &Lists{
		LanguagesURL: DefaultLanguagesURL,
		RegionsURL:   DefaultRegionsURL,
		Client:       &http.Client{Timeout: 30 * time.Second},
		Cache:        cache.New(24*time.Hour, time.Hour),
		Logger:       logger,
	}
}

// Languages returns the ISO 639-1 language choices.
func (l *Lists) Languages() ([]Entry, error) {
	return l.entries("languages", l.LanguagesURL)
}

// Regions returns the ISO 3166-1 region choices.
func (l *Lists) Regions() ([]Entry, error) {
	return l.entries("regions", l.RegionsURL)
}

func (l *Lists) entries(key, url string) ([]Entry, error) {
	if cached, found := l.Cache.Get(key); found {
		return cached.([]Entry), nil
	}

	entries, err := l.fetch(url)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s list: %w", key, err)
	}

	l.Cache.Set(key, entries, cache.DefaultExpiration)
	return entries, nil
}

func (l *Lists) fetch(url string) ([]Entry, error) {
	resp, err := l.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return parseCSV(resp.Body)
}

// parseCSV reads "code,name" rows, skipping the header and anything
// malformed. Some upstream rows carry extra columns; only the first two
// matter.
func parseCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var entries []Entry
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			continue
		}
		if len(record) < 2 {
			continue
		}
		code := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		if code == "" || name == "" {
			continue
		}
		entries = append(entries, Entry{Code: code, Name: name})
	}
	return entries, nil
}
