package ingredient

// Family 單位族：決定是否換算為克重
type Family string

const (
	FamilyVolume      Family = "volume"
	FamilyWeight      Family = "weight"
	FamilyCount       Family = "count"
	FamilyUnspecified Family = "unspecified"
)

// Unit 規範單位
// 每個同義詞都只會解析到唯一一個規範單位
type Unit string

const (
	// 容積單位
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitFluidOunce Unit = "floz"
	UnitPint       Unit = "pint"
	UnitQuart      Unit = "quart"
	UnitGallon     Unit = "gallon"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"

	// 重量單位
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitOunce    Unit = "oz"
	UnitPound    Unit = "lb"
)

// unitFamilies 規範單位對應的單位族
var unitFamilies = map[Unit]Family{
	UnitTeaspoon:   FamilyVolume,
	UnitTablespoon: FamilyVolume,
	UnitCup:        FamilyVolume,
	UnitFluidOunce: FamilyVolume,
	UnitPint:       FamilyVolume,
	UnitQuart:      FamilyVolume,
	UnitGallon:     FamilyVolume,
	UnitMilliliter: FamilyVolume,
	UnitLiter:      FamilyVolume,
	UnitGram:       FamilyWeight,
	UnitKilogram:   FamilyWeight,
	UnitOunce:      FamilyWeight,
	UnitPound:      FamilyWeight,
}

// volumeInCups 容積單位對杯的比值，供同族數量合併（"1/3 cup plus 1 tablespoon"）
var volumeInCups = map[Unit]fraction{
	UnitTeaspoon:   {1, 48},
	UnitTablespoon: {1, 16},
	UnitCup:        {1, 1},
	UnitFluidOunce: {1, 8},
	UnitPint:       {2, 1},
	UnitQuart:      {4, 1},
	UnitGallon:     {16, 1},
	UnitMilliliter: {42268, 10000000},
	UnitLiter:      {42268, 10000},
}

// weightInGrams 重量單位對克的比值
var weightInGrams = map[Unit]fraction{
	UnitGram:     {1, 1},
	UnitKilogram: {1000, 1},
	UnitOunce:    {2835, 100},
	UnitPound:    {45359, 100},
}

// GetFamily 取得單位的單位族；未知或空單位回傳 unspecified
func (u Unit) GetFamily() Family {
	if u == "" {
		return FamilyUnspecified
	}
	if family, ok := unitFamilies[u]; ok {
		return family
	}
	if _, ok := countNouns[string(u)]; ok {
		return FamilyCount
	}
	return FamilyUnspecified
}

// unitSynonyms 單一 token 的單位同義詞（小寫、已去句點與複數）
var unitSynonyms = map[string]Unit{
	"tsp":        UnitTeaspoon,
	"tspn":       UnitTeaspoon,
	"teaspoon":   UnitTeaspoon,
	"tbsp":       UnitTablespoon,
	"tbs":        UnitTablespoon,
	"tablespoon": UnitTablespoon,
	"spoonful":   UnitTablespoon,
	"cup":        UnitCup,
	"floz":       UnitFluidOunce,
	"pint":       UnitPint,
	"pt":         UnitPint,
	"quart":      UnitQuart,
	"qt":         UnitQuart,
	"gallon":     UnitGallon,
	"gal":        UnitGallon,
	"ml":         UnitMilliliter,
	"milliliter": UnitMilliliter,
	"millilitre": UnitMilliliter,
	"cc":         UnitMilliliter,
	"l":          UnitLiter,
	"liter":      UnitLiter,
	"litre":      UnitLiter,
	"g":          UnitGram,
	"gm":         UnitGram,
	"gram":       UnitGram,
	"kg":         UnitKilogram,
	"kilo":       UnitKilogram,
	"kilogram":   UnitKilogram,
	"oz":         UnitOunce,
	"ounce":      UnitOunce,
	"lb":         UnitPound,
	"pound":      UnitPound,
}

// 單字母縮寫：只有在前方已找到數量時才當作單位（避免把食材開頭字母當單位）
var singleLetterUnits = map[string]Unit{
	"c": UnitCup,
	"l": UnitLiter,
	"g": UnitGram,
}

// 雙 token 的單位同義詞，優先於單一 token 比對
var unitPairSynonyms = map[[2]string]Unit{
	{"fl", "oz"}:       UnitFluidOunce,
	{"fluid", "oz"}:    UnitFluidOunce,
	{"fluid", "ounce"}: UnitFluidOunce,
	{"table", "spoon"}: UnitTablespoon,
	{"kilo", "gram"}:   UnitKilogram,
}

// countNouns 看似單位的計數名詞：視為 family=count 的規範單位
// 例如 "1 clove garlic"，"clove" 被保留為單位而非混入食材名稱
var countNouns = map[string]Unit{
	"clove":   "clove",
	"stick":   "stick",
	"slice":   "slice",
	"sprig":   "sprig",
	"pinch":   "pinch",
	"dash":    "dash",
	"drizzle": "drizzle",
	"dab":     "dab",
	"bunch":   "bunch",
	"head":    "head",
	"stalk":   "stalk",
	"ear":     "ear",
	"piece":   "piece",
	"leaf":    "leaf",
}

// wordValues 拼寫數字與分數單字的對照表
// "a"/"an" 視為 1
var wordValues = map[string]fraction{
	"a":      {1, 1},
	"an":     {1, 1},
	"one":    {1, 1},
	"two":    {2, 1},
	"three":  {3, 1},
	"four":   {4, 1},
	"five":   {5, 1},
	"six":    {6, 1},
	"seven":  {7, 1},
	"eight":  {8, 1},
	"nine":   {9, 1},
	"ten":    {10, 1},
	"eleven": {11, 1},
	"twelve": {12, 1},
	"dozen":  {12, 1},
	"couple": {2, 1},
	"few":    {3, 1},
}

// approximationWords 數量前的約略詞，直接跳過
var approximationWords = map[string]bool{
	"about":         true,
	"approximately": true,
	"around":        true,
	"roughly":       true,
	"nearly":        true,
	"approx":        true,
}

// fractionWords 分數單字；前面接整數單字時相乘（"three quarters" = 3/4）
var fractionWords = map[string]fraction{
	"half":     {1, 2},
	"halve":    {1, 2},
	"third":    {1, 3},
	"quarter":  {1, 4},
	"fourth":   {1, 4},
	"fifth":    {1, 5},
	"sixth":    {1, 6},
	"eighth":   {1, 8},
	"tenth":    {1, 10},
	"sixteenth": {1, 16},
}

// vulgarFractions unicode 分數字元
var vulgarFractions = map[rune]fraction{
	'½': {1, 2},
	'⅓': {1, 3},
	'⅔': {2, 3},
	'¼': {1, 4},
	'¾': {3, 4},
	'⅕': {1, 5},
	'⅖': {2, 5},
	'⅗': {3, 5},
	'⅘': {4, 5},
	'⅙': {1, 6},
	'⅚': {5, 6},
	'⅛': {1, 8},
	'⅜': {3, 8},
	'⅝': {5, 8},
	'⅞': {7, 8},
}

// nameStopwords 不影響食材換算身份的描述詞，全部外部化為資料
// 清理後的名稱不得包含這些 token
var nameStopwords = map[string]bool{
	"fresh":    true,
	"finely":   true,
	"coarsely": true,
	"thinly":   true,
	"thickly":  true,
	"roughly":  true,
	"lightly":  true,
	"firmly":   true,
	"chopped":  true,
	"diced":    true,
	"sliced":   true,
	"minced":   true,
	"melted":   true,
	"softened": true,
	"packed":   true,
	"scant":    true,
	"heaping":  true,
	"generous": true,
	"large":    true,
	"medium":   true,
	"small":    true,
	"very":     true,
	"whole":    true,
	"ripe":     true,
	"skinless": true,
	"boneless": true,
	"skinned":  true,
	"boned":    true,
	"peeled":   true,
	"cored":    true,
	"seeded":   true,
	"ground":   true,
	"dried":    true,
	"shredded": true,
	"grated":   true,
	"picked":   true,
	"country":  true,
	"percent":  true,
	"of":       true,
	"the":      true,
}

// containerWords 容器詞：出現在名稱中直接移除
var containerWords = map[string]bool{
	"can":       true,
	"bag":       true,
	"box":       true,
	"jar":       true,
	"bottle":    true,
	"package":   true,
	"container": true,
	"carton":    true,
}

// trailingQualifiers 行尾修飾語，剝離後收入 modifiers
// 依最長優先順序比對
var trailingQualifiers = []string{
	"or to taste",
	"or as needed",
	"to taste",
	"as needed",
	"for serving",
	"for garnish",
	"for frying",
	"optional",
	"divided",
}

// tailMarkers 名稱截斷標記：標記之後的文字全部捨棄為修飾語
var tailMarkers = []string{
	"such as",
	"like",
	"available at",
	"about",
	"plus",
	"for",
}

// singularExceptions 複數還原的例外
var singularExceptions = map[string]string{
	"cookies":   "cookie",
	"brownies":  "brownie",
	"veggies":   "veggie",
	"smoothies": "smoothie",
	"leaves":    "leaf",
	"halves":    "half",
	"molasses":  "molasses",
}
