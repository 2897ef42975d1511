package categorizer

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_DefaultRules(t *testing.T) {
	c := NewDefaultClassifier(logging.NewMockLogger())

	tests := []struct {
		description string
		expected    string
	}{
		{"SALARY CREDIT ACME CORP", models.CategorySalary},
		{"Monthly payroll", models.CategorySalary},
		{"NEFT-HDFC0001-JOHN", models.CategoryTransfer},
		{"ATM WDL 12345", models.CategoryWithdrawal},
		{"Cheque deposit branch", models.CategoryDeposit},
		{"BESCOM Electricity bill", models.CategoryUtility},
		{"Starbucks Cafe", models.CategoryFood},
		{"PVR Cinema tickets", models.CategoryEntertainment},
		{"Apollo Pharmacy", models.CategoryHealthcare},
		{"Phoenix Mall", models.CategoryShopping},
		{"UBER TRIP", models.CategoryTransport},
		{"NETFLIX.COM", models.CategorySubscription},
		{"random vendor xyz", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.description))
		})
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	c := NewDefaultClassifier(logging.NewMockLogger())

	// salary and transfer both match; SALARY is listed first.
	assert.Equal(t, models.CategorySalary, c.Classify("Salary transfer"))
	// "gas" (UTILITY) is listed before "petrol" (TRANSPORT).
	assert.Equal(t, models.CategoryUtility, c.Classify("petrol and gas station"))
	// "check" is a DEPOSIT keyword and wins over "store".
	assert.Equal(t, models.CategoryDeposit, c.Classify("store checkout"))
}

func TestClassify_OrderSensitivity(t *testing.T) {
	a := models.CategoryConfig{Name: "A", Keywords: []string{"coffee"}}
	b := models.CategoryConfig{Name: "B", Keywords: []string{"shop"}}

	ab, err := NewClassifier([]models.CategoryConfig{a, b}, logging.NewMockLogger())
	require.NoError(t, err)
	ba, err := NewClassifier([]models.CategoryConfig{b, a}, logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, "A", ab.Classify("Coffee Shop"))
	assert.Equal(t, "B", ba.Classify("Coffee Shop"))
}

func TestClassify_SubstringMatch(t *testing.T) {
	c := NewDefaultClassifier(logging.NewMockLogger())
	// "prime" inside a longer word still matches, like the keyword table always has.
	assert.Equal(t, models.CategorySubscription, c.Classify("PRIMEVIDEO"))
	// "trf" matches inside "TRFXYZ".
	assert.Equal(t, models.CategoryTransfer, c.Classify("IMP/TRFXYZ"))
}

func TestNewClassifier_Errors(t *testing.T) {
	_, err := NewClassifier(nil, logging.NewMockLogger())
	assert.Error(t, err)

	_, err = NewClassifier([]models.CategoryConfig{{Name: " ", Keywords: []string{"a"}}}, logging.NewMockLogger())
	assert.Error(t, err)

	_, err = NewClassifier([]models.CategoryConfig{{Name: "X", Keywords: []string{" ", ""}}}, logging.NewMockLogger())
	assert.Error(t, err)
}

func TestNewClassifier_NormalizesKeywords(t *testing.T) {
	c, err := NewClassifier([]models.CategoryConfig{{Name: "RENT", Keywords: []string{"  LandLord ", ""}}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "RENT", c.Classify("paid LANDLORD"))
	assert.Equal(t, []models.CategoryConfig{{Name: "RENT", Keywords: []string{"landlord"}}}, c.Rules())
}

func TestNewClassifierFromStore(t *testing.T) {
	t.Run("nil loader uses defaults", func(t *testing.T) {
		c, err := NewClassifierFromStore(nil, logging.NewMockLogger())
		require.NoError(t, err)
		assert.Equal(t, DefaultRules(), c.Rules())
	})

	t.Run("no file configured uses defaults", func(t *testing.T) {
		m := &store.MockCategoryStore{LoadCategoriesError: store.ErrNoCategoriesFile}
		c, err := NewClassifierFromStore(m, logging.NewMockLogger())
		require.NoError(t, err)
		assert.Equal(t, DefaultRules(), c.Rules())
	})

	t.Run("custom table", func(t *testing.T) {
		m := &store.MockCategoryStore{Categories: []models.CategoryConfig{
			{Name: "RENT", Keywords: []string{"rent"}},
		}}
		c, err := NewClassifierFromStore(m, logging.NewMockLogger())
		require.NoError(t, err)
		assert.Equal(t, "RENT", c.Classify("House RENT March"))
		assert.Equal(t, models.CategoryOther, c.Classify("salary"))
	})

	t.Run("load error", func(t *testing.T) {
		m := &store.MockCategoryStore{LoadCategoriesError: errors.New("disk gone")}
		_, err := NewClassifierFromStore(m, logging.NewMockLogger())
		assert.ErrorContains(t, err, "disk gone")
	})
}

func TestClassify_Concurrent(t *testing.T) {
	c := NewDefaultClassifier(logging.NewMockLogger())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, models.CategoryTransport, c.Classify(fmt.Sprintf("uber ride %d-%d", i, j)))
			}
		}(i)
	}
	wg.Wait()
}
