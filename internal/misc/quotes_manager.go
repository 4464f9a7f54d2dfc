package misc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/datekey"
)

var ErrNoQuotes = errors.New("no quotes loaded")

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

type QuotesManager struct {
	Quotes        []*Quote
	AuthorsQuotes map[string][]*Quote
	GenresQuotes  map[string][]*Quote
}

func NewQuoteManager(quotesCsvReader *csv.Reader) (*QuotesManager, error) {
	qm := &QuotesManager{}
	qm.AuthorsQuotes = make(map[string][]*Quote)
	qm.GenresQuotes = make(map[string][]*Quote)

	log.Println("reading quotes CSV ...")

	quotesCsvReader.Comma = ';'
	for {
		record, err := quotesCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 3 {
			return nil, fmt.Errorf("record [%s] does not have 3 elements", record)
		}

		// QUOTE;AUTHOR;GENRE
		quote := &Quote{
			Text:   record[0],
			Author: record[1],
			Genre:  record[2],
		}
		qm.Quotes = append(qm.Quotes, quote)

		qm.AuthorsQuotes[quote.Author] = append(qm.AuthorsQuotes[quote.Author], quote)
		qm.GenresQuotes[quote.Genre] = append(qm.GenresQuotes[quote.Genre], quote)
	}

	if len(qm.Quotes) == 0 {
		return nil, ErrNoQuotes
	}

	log.Printf("quotes CSV read %d quotes", len(qm.Quotes))

	return qm, nil
}

func (qm *QuotesManager) RandomQuote() *Quote {
	return qm.Quotes[rand.Intn(len(qm.Quotes))]
}

// DailyQuote picks the same quote for everyone during a day: the sum of
// the day's character codes modulo the number of quotes.
func (qm *QuotesManager) DailyQuote(day datekey.DateKey) *Quote {
	seed := 0
	for _, c := range day.String() {
		seed += int(c)
	}
	return qm.Quotes[seed%len(qm.Quotes)]
}
