package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// PublishDigest creates one row in the KPI digest database for a computed
// snapshot. Returns the created page ID.
func PublishDigest(ctx context.Context, client Client, dbID string, snap *model.Snapshot) (string, error) {
	if dbID == "" {
		return "", eris.New("notion: digest database ID is required")
	}

	title := fmt.Sprintf("%s / %s", snap.Period, snap.Location)

	props := notionapi.Properties{
		"Name":         titleProp(title),
		"Period":       textProp(snap.Period),
		"Location":     textProp(snap.Location),
		"Cargo Tons":   numberProp(snap.Kpis.CargoTons.Value),
		"Lifts/Hour":   numberProp(snap.Kpis.LiftsPerHour.Value),
		"Productive %": numberProp(snap.Kpis.ProductivePercent.Value),
		"Fluid (bbl)":  numberProp(snap.Kpis.FluidVolumeBbls.Value),
		"Cost/Ton":     numberProp(snap.Kpis.CostPerTon.Value),
		"Cost/Hour":    numberProp(snap.Kpis.CostPerHour.Value),
		"Voyages":      numberProp(snap.Kpis.VoyageCount.Value),
	}
	if snap.Integrity != nil {
		props["Data Score"] = numberProp(snap.Integrity.Score)
	}

	page, err := client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
	})
	if err != nil {
		return "", eris.Wrap(err, "notion: publish digest")
	}
	return string(page.ID), nil
}

func titleProp(s string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: s}}},
	}
}

func textProp(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: s}}},
	}
}

func numberProp(v float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{Number: v}
}
