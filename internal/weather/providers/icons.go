package providers

// Icon tokens are "<2-digit bucket><d|n>". The bucket is looked up from the
// vendor's numeric condition code in a range table so that adding a vendor
// means adding rows, not branches.

// iconRange maps an inclusive condition-code range to an icon bucket.
type iconRange struct {
	min, max int
	bucket   string
}

// OpenWeather condition-code space: 2xx thunderstorm, 3xx drizzle, 5xx rain,
// 6xx snow, 7xx atmosphere, 800 clear, 80x clouds.
var openWeatherIconBuckets = []iconRange{
	{200, 232, "11"}, // thunderstorm
	{300, 321, "09"}, // drizzle, shown as shower rain
	{500, 504, "10"}, // rain
	{511, 511, "13"}, // freezing rain, shown as snow
	{520, 531, "09"}, // shower rain
	{600, 622, "13"}, // snow
	{701, 781, "50"}, // mist, haze, fog, dust
	{800, 800, "01"}, // clear sky
	{801, 801, "02"}, // few clouds
	{802, 802, "03"}, // scattered clouds
	{803, 804, "04"}, // broken and overcast clouds
}

// defaultIconBucket is used for any code outside the table.
const defaultIconBucket = "03"

// iconToken returns the shared icon token for a vendor condition code. The
// mapping is total: unrecognized codes fall into the default bucket.
func iconToken(conditionID int, night bool) string {
	bucket := defaultIconBucket
	for _, r := range openWeatherIconBuckets {
		if conditionID >= r.min && conditionID <= r.max {
			bucket = r.bucket
			break
		}
	}
	if night {
		return bucket + "n"
	}
	return bucket + "d"
}
