package reference

import "github.com/shopspring/decimal"

// defaultYears carries the built-in regulatory values: the benefit floor
// (minimum wage), the contribution ceiling and the yearly correction index.
// Values are approximations for illustrative use, overridable from the case
// file; they are not a legal table service.
var defaultYears = []struct {
	year                  int
	ceiling, floor, index string
}{
	{1995, "832.66", "100.00", "1.2200"},
	{1996, "957.56", "112.00", "1.0912"},
	{1997, "1031.87", "120.00", "1.0434"},
	{1998, "1081.50", "130.00", "1.0249"},
	{1999, "1255.32", "136.00", "1.0811"},
	{2000, "1328.25", "151.00", "1.0527"},
	{2001, "1430.00", "180.00", "1.0936"},
	{2002, "1561.56", "200.00", "1.1457"},
	{2003, "1869.34", "240.00", "1.1062"},
	{2004, "2508.72", "260.00", "1.0613"},
	{2005, "2668.15", "300.00", "1.0505"},
	{2006, "2801.56", "350.00", "1.0285"},
	{2007, "2894.28", "380.00", "1.0516"},
	{2008, "3038.99", "415.00", "1.0650"},
	{2009, "3218.90", "465.00", "1.0412"},
	{2010, "3416.54", "510.00", "1.0650"},
	{2011, "3689.66", "545.00", "1.0608"},
	{2012, "3916.20", "622.00", "1.0620"},
	{2013, "4159.00", "678.00", "1.0556"},
	{2014, "4390.24", "724.00", "1.0623"},
	{2015, "4663.75", "788.00", "1.1128"},
	{2016, "5189.82", "880.00", "1.0658"},
	{2017, "5531.31", "937.00", "1.0207"},
	{2018, "5645.80", "954.00", "1.0343"},
	{2019, "5839.45", "998.00", "1.0448"},
	{2020, "6101.06", "1045.00", "1.0539"},
	{2021, "6433.57", "1100.00", "1.1016"},
	{2022, "7087.22", "1212.00", "1.0593"},
	{2023, "7507.49", "1302.00", "1.0377"},
	{2024, "7786.02", "1412.00", "1.0471"},
	{2025, "8157.41", "1518.00", "1.0483"},
}

// Default returns the built-in tables.
func Default() *Tables {
	entries := make([]YearValues, 0, len(defaultYears))
	for _, d := range defaultYears {
		entries = append(entries, YearValues{
			Year:        d.year,
			Ceiling:     decimal.RequireFromString(d.ceiling),
			Floor:       decimal.RequireFromString(d.floor),
			IndexFactor: decimal.RequireFromString(d.index),
		})
	}
	t, err := NewTables(entries)
	if err != nil {
		// The built-in set is never empty; reaching this is a programming error.
		panic(err)
	}
	return t
}
