package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// ItemsCSVFile is the name of the items export.
const ItemsCSVFile = "items.csv"

var itemsCSVHeader = []string{
	"Name",
	"Category",
	"Subcategory",
	"Maturity",
	"Homepage",
	"Logo",
	"Twitter",
	"Crunchbase URL",
	"Organization",
	"Country",
	"Funding",
	"Repository",
	"GitHub Stars",
	"GitHub Contributors",
	"Accepted",
	"Incubating",
	"Graduated",
	"Joined",
}

// itemsCSV renders the items export.
func itemsCSV(data *domain.LandscapeData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(itemsCSVHeader); err != nil {
		return nil, err
	}
	for i := range data.Items {
		if err := w.Write(itemRecord(&data.Items[i])); err != nil {
			return nil, fmt.Errorf("writing item %s: %w", data.Items[i].Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func itemRecord(item *domain.Item) []string {
	var organization, country, funding string
	if cb := item.CrunchbaseData; cb != nil {
		organization = cb.Name
		country = cb.Country
		if cb.Funding > 0 {
			funding = strconv.FormatInt(cb.Funding, 10)
		}
	}

	var repo, stars, contributors string
	if r := item.PrimaryRepository(); r != nil {
		repo = r.URL
		if gh := r.GitHubData; gh != nil {
			stars = strconv.Itoa(gh.Stars)
			contributors = strconv.Itoa(gh.ContributorsCount)
		}
	}

	return []string{
		item.Name,
		item.Category,
		item.Subcategory,
		item.Maturity,
		item.HomepageURL,
		item.Logo,
		item.TwitterURL,
		item.CrunchbaseURL,
		organization,
		country,
		funding,
		repo,
		stars,
		contributors,
		formatDate(item.AcceptedAt),
		formatDate(item.IncubatingAt),
		formatDate(item.GraduatedAt),
		formatDate(item.JoinedAt),
	}
}
