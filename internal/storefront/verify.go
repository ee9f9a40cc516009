package storefront

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"

	"doorops/internal/services"
)

// Sequences every listed model must carry.
var modelSequences = []string{"sizes", "coatings", "products"}

type listingEnvelope struct {
	Data *struct {
		Models      []map[string]json.RawMessage `json:"models"`
		Styles      []json.RawMessage            `json:"styles"`
		TotalModels *int                         `json:"totalModels"`
	} `json:"data"`
}

// Incomplete names a model lacking one or more sequences.
type Incomplete struct {
	Model   string   `json:"model"`
	Missing []string `json:"missing"`
}

// ListingReport summarizes one call to the listing endpoint.
type ListingReport struct {
	URL         string       `json:"url"`
	Models      int          `json:"models"`
	Styles      int          `json:"styles"`
	TotalModels int          `json:"total_models"`
	Sizes       int          `json:"sizes"`
	Coatings    int          `json:"coatings"`
	Products    int          `json:"products"`
	Incomplete  []Incomplete `json:"incomplete,omitempty"`
}

// Consistent reports whether totalModels agrees with the models listed and
// every model is complete.
func (r ListingReport) Consistent() bool {
	return r.TotalModels == r.Models && len(r.Incomplete) == 0
}

// VerifyProducts fetches the listing endpoint with query and checks its
// envelope.
func (c *Client) VerifyProducts(ctx context.Context, query url.Values) (ListingReport, error) {
	endpoint := c.endpoint(c.ProductsPath, query)
	report := ListingReport{URL: endpoint}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return report, services.Wrap(services.ErrExternalAPI, "storefront", "fetch listing", "", err)
	}

	var envelope listingEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return report, services.Wrap(services.ErrExternalAPI, "storefront", "decode listing", "", err)
	}
	if envelope.Data == nil {
		return report, services.Wrap(services.ErrExternalAPI, "storefront", "decode listing", "response has no data object", nil)
	}

	report.Models = len(envelope.Data.Models)
	report.Styles = len(envelope.Data.Styles)
	if envelope.Data.TotalModels != nil {
		report.TotalModels = *envelope.Data.TotalModels
	}
	for i, model := range envelope.Data.Models {
		var missing []string
		for _, key := range modelSequences {
			n, ok := sequenceLen(model[key])
			if !ok {
				missing = append(missing, key)
				continue
			}
			switch key {
			case "sizes":
				report.Sizes += n
			case "coatings":
				report.Coatings += n
			case "products":
				report.Products += n
			}
		}
		if len(missing) > 0 {
			report.Incomplete = append(report.Incomplete, Incomplete{Model: modelName(model, i), Missing: missing})
		}
	}
	sort.SliceStable(report.Incomplete, func(i, j int) bool {
		return report.Incomplete[i].Model < report.Incomplete[j].Model
	})
	return report, nil
}

func sequenceLen(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return 0, false
	}
	return len(items), true
}

func modelName(model map[string]json.RawMessage, index int) string {
	for _, key := range []string{"model", "modelKey", "name", "id"} {
		var value string
		if err := json.Unmarshal(model[key], &value); err == nil && value != "" {
			return value
		}
	}
	return "#" + strconv.Itoa(index)
}
