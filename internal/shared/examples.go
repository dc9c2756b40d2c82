package shared

// ExamplePostcodes are the quick-select postcodes the dashboard offers; the
// warmup binary primes the caches for them.
var ExamplePostcodes = []string{
	"SW1A 1AA",
	"M1 1RG",
	"M2 1LT",
	"E14 9GE",
	"EH1 1YZ",
	"CF10 1EP",
}
