package totals_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/totals"
)

func TestRecompute_ScenarioA(t *testing.T) {
	got := totals.PurchaseOrderProfile.Recompute(scenarioLines(), totals.Adjustments{
		GlobalDiscount: 30,
		ShippingCost:   10,
	}, intraState(18))

	assert.Equal(t, 230.0, got.SubTotal)
	assert.Equal(t, 20.0, got.LineDiscountTotal)
	assert.Equal(t, 50.0, got.TotalDiscount)
	assert.Equal(t, 200.0, got.TaxableAmount)
	assert.Equal(t, 9.0, got.Tax.CGSTRate)
	assert.Equal(t, 9.0, got.Tax.SGSTRate)
	assert.Equal(t, 0.0, got.Tax.IGSTRate)
	assert.Equal(t, 36.0, got.TaxAmount)
	assert.Equal(t, 246.0, got.NetPayable)
	assert.Equal(t, "Two Hundred and Forty Six Rupees Only", got.AmountInWords)
}

func TestRecompute_ScenarioB_Due(t *testing.T) {
	got := totals.PurchaseOrderProfile.Recompute(scenarioLines(), totals.Adjustments{
		GlobalDiscount: 30, ShippingCost: 10, PaidAmount: paid(200),
	}, intraState(18))

	assert.True(t, got.TracksSettlement)
	assert.Equal(t, 46.0, got.DueAmount)
	assert.Equal(t, 0.0, got.ChangeAmount)
}

func TestRecompute_ScenarioC_Change(t *testing.T) {
	got := totals.PurchaseOrderProfile.Recompute(scenarioLines(), totals.Adjustments{
		GlobalDiscount: 30, ShippingCost: 10, PaidAmount: paid(300),
	}, intraState(18))

	assert.Equal(t, 0.0, got.DueAmount)
	assert.Equal(t, 54.0, got.ChangeAmount)
}

func TestRecompute_ScenarioD_NoTax(t *testing.T) {
	got := totals.PurchaseOrderProfile.Recompute(scenarioLines(), totals.Adjustments{
		GlobalDiscount: 30, ShippingCost: 10, NoTax: true,
	}, intraState(18))

	assert.Equal(t, 0.0, got.TaxAmount)
	assert.Equal(t, totals.TaxBreakdown{}, got.Tax)
	assert.Equal(t, 210.0, got.NetPayable)
}

func TestRecompute_ScenarioE_DiscountExceedsSubtotal(t *testing.T) {
	for _, cfg := range []*totals.TaxConfiguration{intraState(18), interState(28), nil} {
		got := totals.PurchaseOrderProfile.Recompute(scenarioLines(), totals.Adjustments{
			GlobalDiscount: 500, ShippingCost: 10,
		}, cfg)

		assert.Equal(t, 0.0, got.TaxableAmount)
		assert.Equal(t, 0.0, got.TaxAmount)
		assert.Equal(t, 10.0, got.NetPayable)
		assert.Equal(t, 520.0, got.TotalDiscount)
	}
}

func TestRecompute_PurchaseOrderWithoutPaymentIsFullyDue(t *testing.T) {
	got := totals.PurchaseOrderProfile.Recompute(scenarioLines(), totals.Adjustments{
		GlobalDiscount: 30, ShippingCost: 10,
	}, intraState(18))

	assert.True(t, got.TracksSettlement)
	assert.Equal(t, 246.0, got.DueAmount)
	assert.Equal(t, 0.0, got.ChangeAmount)
}

func TestRecompute_QuotationIgnoresPayment(t *testing.T) {
	got := totals.QuotationProfile.Recompute(scenarioLines(), totals.Adjustments{
		GlobalDiscount: 30, ShippingCost: 10, PaidAmount: paid(300),
	}, intraState(18))

	assert.False(t, got.TracksSettlement)
	assert.Equal(t, 246.0, got.NetPayable)
	assert.Zero(t, got.DueAmount)
	assert.Zero(t, got.ChangeAmount)
}

func TestRecompute_SameInputsSameTotalsAcrossKinds(t *testing.T) {
	items := []totals.LineItem{
		{Quantity: 3, UnitPrice: 33.333, DiscountPercent: 7.5},
		{Quantity: 1, UnitPrice: 0.1, DiscountPercent: 0},
		{Quantity: 7, UnitPrice: 0.2, DiscountPercent: 12.5},
	}
	adj := totals.Adjustments{GlobalDiscount: 1.11, ShippingCost: 2.22}

	po := totals.PurchaseOrderProfile.Recompute(items, adj, intraState(18))
	q := totals.QuotationProfile.Recompute(items, adj, intraState(18))

	assert.Equal(t, po.SubTotal, q.SubTotal)
	assert.Equal(t, po.TaxAmount, q.TaxAmount)
	assert.Equal(t, po.NetPayable, q.NetPayable)
}

func TestRecompute_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for run := 0; run < 300; run++ {
		items := make([]totals.LineItem, r.Intn(10))
		for i := range items {
			items[i] = totals.LineItem{
				Quantity:        float64(1 + r.Intn(50)),
				UnitPrice:       float64(r.Intn(500000)) / 100,
				DiscountPercent: float64(r.Intn(5000)) / 100,
			}
		}
		adj := totals.Adjustments{
			GlobalDiscount: float64(r.Intn(200000)) / 100,
			ShippingCost:   float64(r.Intn(10000)) / 100,
			NoTax:          r.Intn(4) == 0,
		}
		var cfg *totals.TaxConfiguration
		if r.Intn(5) != 0 {
			cfg = &totals.TaxConfiguration{IsInterState: r.Intn(2) == 0, Percentage: []float64{5, 12, 18, 28}[r.Intn(4)]}
		}

		got := totals.PurchaseOrderProfile.Recompute(items, adj, cfg)

		require.GreaterOrEqual(t, got.TaxableAmount, 0.0)
		assert.InDelta(t, got.TaxableAmount+got.TaxAmount+adj.ShippingCost, got.NetPayable, 0.01)
		assert.InDelta(t, got.LineDiscountTotal+adj.GlobalDiscount, got.TotalDiscount, 0.01)
		if adj.NoTax || cfg == nil {
			assert.Zero(t, got.TaxAmount)
		}
		if adj.GlobalDiscount > got.SubTotal {
			assert.Zero(t, got.TaxableAmount)
		}
	}
}

func TestBuildPayload_PurchaseOrder(t *testing.T) {
	items := scenarioLines()
	adj := totals.Adjustments{GlobalDiscount: 30, ShippingCost: 10, PaidAmount: paid(200)}
	cfg := intraState(18)
	taxTypeID := "tax-18"

	got := totals.PurchaseOrderProfile.Recompute(items, adj, cfg)
	pl := totals.PurchaseOrderProfile.BuildPayload(items, adj, &taxTypeID, got)

	assert.Equal(t, 30.0, pl.Discount)
	assert.Equal(t, 50.0, pl.TotalDiscount)
	assert.Equal(t, 10.0, pl.ShippingCost)
	assert.Equal(t, 230.0, pl.GrandTotal)
	assert.Equal(t, 246.0, pl.NetTotal)
	require.NotNil(t, pl.PaidAmount)
	assert.Equal(t, 200.0, *pl.PaidAmount)
	require.NotNil(t, pl.Due)
	assert.Equal(t, 46.0, *pl.Due)
	require.NotNil(t, pl.Change)
	assert.Equal(t, 0.0, *pl.Change)
	assert.Equal(t, 0, pl.NoTax)
	assert.Equal(t, &taxTypeID, pl.TaxTypeID)
	assert.Equal(t, 9.0, pl.CGSTRate)
	require.Len(t, pl.Items, 2)
	assert.Equal(t, totals.PayloadItem{ProductID: "p-1", Quantity: 2, UnitPrice: 100, Discount: 10, Total: 180}, pl.Items[0])
}

func TestBuildPayload_QuotationOmitsSettlement(t *testing.T) {
	items := scenarioLines()
	adj := totals.Adjustments{GlobalDiscount: 30, ShippingCost: 10, NoTax: true}

	got := totals.QuotationProfile.Recompute(items, adj, intraState(18))
	pl := totals.QuotationProfile.BuildPayload(items, adj, nil, got)

	raw, err := json.Marshal(pl)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "paidAmount")
	assert.NotContains(t, m, "due")
	assert.NotContains(t, m, "change")
	assert.Equal(t, float64(1), m["noTax"])
	assert.Nil(t, m["taxTypeId"])
	assert.Contains(t, m, "taxTypeId")
	assert.Equal(t, 210.0, m["netTotal"])
}

func TestVerify(t *testing.T) {
	items := scenarioLines()
	adj := totals.Adjustments{GlobalDiscount: 30, ShippingCost: 10, PaidAmount: paid(300)}
	cfg := intraState(18)
	pl := totals.PurchaseOrderProfile.BuildPayload(items, adj, nil, totals.PurchaseOrderProfile.Recompute(items, adj, cfg))

	t.Run("consistent", func(t *testing.T) {
		assert.Empty(t, totals.PurchaseOrderProfile.Verify(pl, cfg))
	})

	t.Run("within_a_cent", func(t *testing.T) {
		drift := pl
		drift.NetTotal += 0.01
		assert.Empty(t, totals.PurchaseOrderProfile.Verify(drift, cfg))
	})

	t.Run("net_total_drift", func(t *testing.T) {
		bad := pl
		bad.NetTotal = 250
		mismatches := totals.PurchaseOrderProfile.Verify(bad, cfg)
		require.Len(t, mismatches, 1)
		assert.Equal(t, "netTotal", mismatches[0].Field)
		assert.Equal(t, 246.0, mismatches[0].Expected)
		assert.Equal(t, 250.0, mismatches[0].Actual)
	})

	t.Run("wrong_tax_split", func(t *testing.T) {
		bad := pl
		bad.IGSTRate, bad.CGSTRate, bad.SGSTRate = 18, 0, 0
		fields := make([]string, 0)
		for _, m := range totals.PurchaseOrderProfile.Verify(bad, cfg) {
			fields = append(fields, m.Field)
		}
		assert.ElementsMatch(t, []string{"igstRate", "cgstRate", "sgstRate"}, fields)
	})

	t.Run("item_total_drift", func(t *testing.T) {
		bad := pl
		bad.Items = append([]totals.PayloadItem(nil), pl.Items...)
		bad.Items[1].Total = 55
		mismatches := totals.PurchaseOrderProfile.Verify(bad, cfg)
		require.Len(t, mismatches, 1)
		assert.Equal(t, "items[1].total", mismatches[0].Field)
	})
}

func TestDiff_ItemCount(t *testing.T) {
	items := scenarioLines()
	adj := totals.Adjustments{GlobalDiscount: 30}
	computed := totals.QuotationProfile.BuildPayload(items, adj, nil,
		totals.QuotationProfile.Recompute(items, adj, intraState(18)))

	submitted := computed
	submitted.Items = computed.Items[:1]

	mismatches := totals.QuotationProfile.Diff(computed, submitted)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "items", mismatches[0].Field)
	assert.Equal(t, float64(len(computed.Items)), mismatches[0].Expected)
	assert.Equal(t, 1.0, mismatches[0].Actual)
}

func TestDiff_QuotationIgnoresSettlement(t *testing.T) {
	items := scenarioLines()
	adj := totals.Adjustments{}
	computed := totals.QuotationProfile.BuildPayload(items, adj, nil,
		totals.QuotationProfile.Recompute(items, adj, nil))

	submitted := computed
	submitted.Due = paid(999)

	assert.Empty(t, totals.QuotationProfile.Diff(computed, submitted))
}

func TestRecompute_OverflowingLineStaysFinite(t *testing.T) {
	lines := []totals.LineItem{
		{ProductID: "huge", Quantity: 1e200, UnitPrice: 1e200, DiscountPercent: 10},
		{ProductID: "p-2", Quantity: 1, UnitPrice: 50},
	}
	paid := 100.0

	got := totals.PurchaseOrderProfile.Recompute(lines, totals.Adjustments{PaidAmount: &paid}, intraState(18))

	assert.Equal(t, 50.0, got.SubTotal)
	assert.Equal(t, 50.0, got.TaxableAmount)
	assert.Equal(t, 9.0, got.TaxAmount)
	assert.Equal(t, 59.0, got.NetPayable)
	assert.Equal(t, 41.0, got.ChangeAmount)
	assert.Equal(t, 0.0, got.DueAmount)
	assert.InDelta(t, got.TaxableAmount+got.TaxAmount, got.NetPayable, 0.01)
	assert.Equal(t, "Fifty Nine Rupees Only", got.AmountInWords)

	_, err := json.Marshal(got)
	require.NoError(t, err)
	_, err = json.Marshal(totals.PurchaseOrderProfile.BuildPayload(lines, totals.Adjustments{PaidAmount: &paid}, nil, got))
	require.NoError(t, err)
}
