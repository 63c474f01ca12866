package analyzer

import (
	"sort"

	"github.com/nao1215/contrastscan/internal/model"
)

// DefaultTopExamples bounds the ranked vulnerable-token list.
const DefaultTopExamples = 10

// Aggregate folds a site's classified tokens into its summary. topN
// bounds the ranked example list; values below 1 fall back to the
// default. The CVI stays nil for a site with zero tokens so downstream
// tables can distinguish "nothing measured" from "nothing wrong".
func Aggregate(r *model.SiteReport, topN int) *model.SiteSummary {
	if topN < 1 {
		topN = DefaultTopExamples
	}

	summary := &model.SiteSummary{
		Site:              r.Site,
		URL:               r.URL,
		Matched:           r.Matched,
		Scanned:           r.Scanned,
		Kept:              r.ElementsKept,
		UniqueStyleGroups: len(r.Tokens),
		CategoryCounts:    make(map[model.Category]int),
	}

	var vulnerable []*model.StyleToken
	for _, tok := range r.Tokens {
		summary.CategoryCounts[tok.Category] += tok.Count

		v := tok.Verdict
		if v == nil {
			continue
		}
		if v.IsVulnerable {
			summary.TotalVulnerable++
			vulnerable = append(vulnerable, tok)
		}
		if v.CVDOnlyAny() {
			summary.CVDOnlyCount++
		}

		if cv := v.Channel(model.ChannelText); cv != nil {
			if cv.Fails {
				summary.VulnerableGroupsText++
			}
			if cv.CVDOnly {
				summary.CVDOnlyFailText++
			}
		}
		if indicatorFails(v) {
			summary.VulnerableGroupsIndicator++
		}
		if indicatorCVDOnly(v) {
			summary.CVDOnlyFailIndicator++
		}
	}

	if summary.UniqueStyleGroups > 0 {
		cvi := float64(summary.CVDOnlyCount) / float64(summary.UniqueStyleGroups)
		summary.CVI = &cvi
		summary.Risk = model.RiskFromCVI(cvi)
	}

	summary.TopVulnerableExamples = rankExamples(vulnerable, topN)
	return summary
}

// indicatorFails reports whether the border or outline channel fails.
func indicatorFails(v *model.VulnerabilityVerdict) bool {
	for _, ch := range []model.Channel{model.ChannelBorder, model.ChannelOutline} {
		if cv := v.Channel(ch); cv != nil && cv.Fails {
			return true
		}
	}
	return false
}

// indicatorCVDOnly reports whether the border or outline channel is
// CVD-only vulnerable.
func indicatorCVDOnly(v *model.VulnerabilityVerdict) bool {
	for _, ch := range []model.Channel{model.ChannelBorder, model.ChannelOutline} {
		if cv := v.Channel(ch); cv != nil && cv.CVDOnly {
			return true
		}
	}
	return false
}

// rankExamples orders vulnerable tokens by descending element count,
// keeping discovery order as the tie-break, and renders the top n.
func rankExamples(vulnerable []*model.StyleToken, n int) []model.VulnerableExample {
	ranked := make([]*model.StyleToken, len(vulnerable))
	copy(ranked, vulnerable)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	examples := make([]model.VulnerableExample, 0, len(ranked))
	for _, tok := range ranked {
		examples = append(examples, makeExample(tok))
	}
	return examples
}

// makeExample renders one vulnerable token as an auditor-facing row.
func makeExample(tok *model.StyleToken) model.VulnerableExample {
	ex := model.VulnerableExample{
		Category:        tok.Category,
		State:           tok.State,
		Count:           tok.Count,
		SampleLabel:     tok.SampleLabel(),
		TextColor:       tok.TextColor,
		BackgroundColor: tok.BackgroundColor,
		BorderColor:     tok.BorderColor,
		OutlineColor:    tok.OutlineColor,
		FontSize:        tok.FontSize,
		Reasons:         tok.Verdict.Reasons,
	}

	for i := range tok.Verdict.Channels {
		cv := &tok.Verdict.Channels[i]
		if !cv.Fails {
			continue
		}
		ex.Failures = append(ex.Failures, makeFailure(tok, cv))
	}
	return ex
}

// makeFailure details one failing channel, splitting the deficiency
// ratios into those below the threshold and the full measured set.
func makeFailure(tok *model.StyleToken, cv *model.ChannelVerdict) model.ChannelFailure {
	failure := model.ChannelFailure{
		Channel:     cv.Channel,
		Threshold:   cv.Threshold,
		Worst:       cv.Worst,
		WorstVision: cv.WorstVision,
	}

	ratios := tok.Contrast.Get(cv.Channel)
	if ratios == nil {
		return failure
	}
	failure.Normal = ratios.Get(model.VisionNormal)

	for _, v := range model.CVDVisions {
		r := ratios.Get(v)
		if r == nil {
			continue
		}
		if failure.AllCVD == nil {
			failure.AllCVD = make(map[string]float64)
		}
		failure.AllCVD[v.String()] = *r
		if *r < cv.Threshold {
			if failure.FailingCVD == nil {
				failure.FailingCVD = make(map[string]float64)
			}
			failure.FailingCVD[v.String()] = *r
		}
	}
	return failure
}
