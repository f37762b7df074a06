package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// minorUnits is the number of decimal places the balance check compares at.
const minorUnits = 2

// BalanceSection is one category of the balance sheet broken down by
// subcategory.
type BalanceSection struct {
	Category      entity.BalanceCategory `json:"category"`
	Subcategories []CategoryTotal        `json:"subcategories"`
	Total         decimal.Decimal        `json:"total"`
}

// BalanceSheet is the grouped balance sheet with its balance check.
type BalanceSheet struct {
	Sections         []BalanceSection `json:"sections"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
	Difference       decimal.Decimal  `json:"difference"`
	Balanced         bool             `json:"isBalanced"`
}

// Section returns the section for category.
func (b BalanceSheet) Section(category entity.BalanceCategory) BalanceSection {
	for _, s := range b.Sections {
		if s.Category == category {
			return s
		}
	}
	return BalanceSection{Category: category}
}

// AnalyzeBalanceSheet groups items by category then subcategory. Sections
// are always returned in assets, liabilities, equity order. The sheet is
// balanced when assets equal liabilities plus equity once both sides are
// rounded to minor currency units.
func AnalyzeBalanceSheet(items []entity.BalanceSheetItem) BalanceSheet {
	var sheet BalanceSheet
	for _, cat := range entity.BalanceCategories {
		section := BalanceSection{Category: cat}
		index := make(map[string]int)
		for _, item := range items {
			if item.Category != cat {
				continue
			}
			i, ok := index[item.Subcategory]
			if !ok {
				i = len(section.Subcategories)
				index[item.Subcategory] = i
				section.Subcategories = append(section.Subcategories, CategoryTotal{Category: item.Subcategory})
			}
			section.Subcategories[i].Amount = section.Subcategories[i].Amount.Add(item.Amount)
			section.Total = section.Total.Add(item.Amount)
		}
		sheet.Sections = append(sheet.Sections, section)
	}

	sheet.TotalAssets = sheet.Section(entity.Assets).Total
	sheet.TotalLiabilities = sheet.Section(entity.Liabilities).Total
	sheet.TotalEquity = sheet.Section(entity.Equity).Total

	claims := sheet.TotalLiabilities.Add(sheet.TotalEquity)
	sheet.Difference = sheet.TotalAssets.Sub(claims)
	sheet.Balanced = sheet.TotalAssets.Round(minorUnits).Equal(claims.Round(minorUnits))
	return sheet
}
