package milesearch

import (
	"strings"

	"milesearch-backend/lib/htmlutil"
	"milesearch-backend/lib/textutil"
)

// class names of the result page
const (
	classTotal         = "milecount"
	classBreakdown     = "Flightmilebns"
	classBreakdownItem = "FlightmilebnsItem"
	classItemValue     = "FlightmilebnsNum"
	classItemLabel     = "FlightmilebnsTitle"
	// decorative breakdown rows carry this in their class attribute
	classMarker = "Mark"
)

// ParseResult reads a search result out of the result container. The page
// only encodes meaning through class names and positions, so each step below
// fails with a *StructuralError instead of guessing when a required element
// is missing.
func ParseResult(root htmlutil.Node) (Result, error) {
	if root == nil {
		return Result{}, structuralf("result", nil, "result container is missing")
	}

	var res Result
	steps := []struct {
		name string
		run  func(htmlutil.Node, *Result) error
	}{
		{"totals", parseTotals},
		{"standard flight miles", parseStandardFlightMiles},
		{"breakdowns", parseBreakdowns},
	}
	for _, step := range steps {
		err := step.run(root, &res)
		if err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

func parseTotals(root htmlutil.Node, res *Result) error {
	totals := root.FindClass(classTotal)
	if len(totals) < 2 {
		return structuralf("totals", nil, "expected 2 .%s elements, found %d", classTotal, len(totals))
	}

	miles, err := textutil.ParseCount(totals[0].Text())
	if err != nil {
		return structuralf("totals", err, "miles")
	}
	fop, err := textutil.ParseCount(totals[1].Text())
	if err != nil {
		return structuralf("totals", err, "fop")
	}
	res.Miles = miles
	res.FOP = fop
	return nil
}

// the standard mileage is written in prose next to the total, in the second
// child of the total's parent.
func parseStandardFlightMiles(root htmlutil.Node, res *Result) error {
	totals := root.FindClass(classTotal)
	if len(totals) == 0 {
		return structuralf("standard flight miles", nil, "no .%s element", classTotal)
	}
	parent := totals[0].Parent()
	if parent == nil {
		return structuralf("standard flight miles", nil, "total has no parent")
	}
	children := parent.Children()
	if len(children) < 2 {
		return structuralf("standard flight miles", nil, "expected 2 children next to the total, found %d", len(children))
	}

	n, err := textutil.ParseEmbeddedCount(children[1].Text())
	if err != nil {
		return structuralf("standard flight miles", err, "could not read standard miles")
	}
	res.StandardFlightMiles = n
	return nil
}

func breakdownItems(group htmlutil.Node) []htmlutil.Node {
	var items []htmlutil.Node
	for _, item := range group.FindClass(classBreakdownItem) {
		class, _ := item.Attr("class")
		if strings.Contains(class, classMarker) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func parseBreakdowns(root htmlutil.Node, res *Result) error {
	groups := root.FindClass(classBreakdown)
	if len(groups) < 2 {
		return structuralf("breakdowns", nil, "expected 2 .%s groups, found %d", classBreakdown, len(groups))
	}
	milesItems := breakdownItems(groups[0])
	fopItems := breakdownItems(groups[1])

	if len(milesItems) < 1 {
		return structuralf("miles breakdown", nil, "flight miles item is missing")
	}
	flightMiles, err := readBonus(milesItems[0])
	if err != nil {
		return structuralf("miles breakdown", err, "flight miles item")
	}
	res.FlightMiles = flightMiles.Value
	res.FlightMilesRemark = flightMiles.Remark

	if len(milesItems) > 1 {
		bonus, err := readBonus(milesItems[1])
		if err != nil {
			return structuralf("miles breakdown", err, "bonus miles item")
		}
		res.BonusMiles = &bonus
	}

	if len(fopItems) < 2 {
		return structuralf("fop breakdown", nil, "fop rate item is missing")
	}
	rateText, err := itemText(fopItems[1], classItemValue)
	if err != nil {
		return structuralf("fop breakdown", err, "fop rate item")
	}
	rate, err := textutil.ParseDecimal(rateText)
	if err != nil {
		return structuralf("fop breakdown", err, "fop rate item")
	}
	res.FOPRate = rate

	if len(fopItems) > 2 {
		bonus, err := readBonus(fopItems[2])
		if err != nil {
			return structuralf("fop breakdown", err, "fop bonus item")
		}
		res.FOPBonus = &bonus
	}
	return nil
}

func itemText(item htmlutil.Node, class string) (string, error) {
	matches := item.FindClass(class)
	if len(matches) == 0 {
		return "", structuralf("breakdown item", nil, "no .%s element", class)
	}
	return matches[0].Text(), nil
}

func readBonus(item htmlutil.Node) (Bonus, error) {
	valueText, err := itemText(item, classItemValue)
	if err != nil {
		return Bonus{}, err
	}
	value, err := textutil.ParseCount(valueText)
	if err != nil {
		return Bonus{}, err
	}
	label, err := itemText(item, classItemLabel)
	if err != nil {
		return Bonus{}, err
	}
	return Bonus{Value: value, Remark: textutil.CollapseWhitespace(label)}, nil
}
