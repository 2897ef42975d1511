package categorizer

import "fjacquet/statement-parser/internal/models"

// DefaultRules returns the built-in category table. Order is priority: a
// description mentioning both "salary" and "transfer" is SALARY.
func DefaultRules() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: models.CategorySalary, Keywords: []string{"salary", "wage", "stipend", "payroll"}},
		{Name: models.CategoryTransfer, Keywords: []string{"transfer", "trf", "neft", "rtgs", "imps"}},
		{Name: models.CategoryWithdrawal, Keywords: []string{"withdrawal", "atm", "cash"}},
		{Name: models.CategoryDeposit, Keywords: []string{"deposit", "cheque", "check"}},
		{Name: models.CategoryUtility, Keywords: []string{"electricity", "water", "gas", "phone", "internet"}},
		{Name: models.CategoryFood, Keywords: []string{"restaurant", "food", "cafe", "grocery", "supermarket"}},
		{Name: models.CategoryEntertainment, Keywords: []string{"movie", "cinema", "entertainment", "games"}},
		{Name: models.CategoryHealthcare, Keywords: []string{"hospital", "clinic", "pharmacy", "doctor", "medical"}},
		{Name: models.CategoryShopping, Keywords: []string{"shopping", "mall", "store", "retail"}},
		{Name: models.CategoryTransport, Keywords: []string{"uber", "taxi", "petrol", "fuel", "transport"}},
		{Name: models.CategorySubscription, Keywords: []string{"subscription", "netflix", "spotify", "prime"}},
	}
}
