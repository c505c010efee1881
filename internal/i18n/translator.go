// Package i18n resolves human-facing strings by source text. The rest
// of the codebase writes messages in English and treats the translated
// result as opaque.
package i18n

// Translator maps source strings to a configured locale. Lookups fall
// back to the source text, so an incomplete catalog degrades to English
// rather than failing.
type Translator struct {
	locale  string
	catalog map[string]string
}

var catalogs = map[string]map[string]string{
	"fa": {
		"invalid credentials": "اطلاعات وارد شده نامعتبر است",

		"Fever, chest pain, shortness of breath":    "تب، درد قفسه سینه، تنگی نفس",
		"Take your blood thinner medication daily.": "روزانه داروهای رقیق‌کننده خون مصرف کنید.",
		"After 1 month.":                            "بعد از 1 ماه.",
		"Regular ECG check-ups.":                    "بررسی‌های منظم ECG.",
		"Avoid stress and eat low-fat food.":        "از استرس دوری کنید و غذای کم چرب مصرف کنید.",
		"Increase your omega-3 intake.":             "مصرف امگا ۳ را افزایش دهید.",

		"Dizziness, severe headache, nausea":                "سرگیجه، سردرد شدید، حالت تهوع",
		"Take the prescribed pain medication.":              "داروهای تجویزی مسکن مصرف کنید.",
		"After 2 weeks.":                                    "بعد از ۲ هفته.",
		"MRI if symptoms persist.":                          "MRI در صورت ادامه علائم.",
		"Avoid excessive screen time.":                      "از استفاده بیش از حد از صفحه نمایش خودداری کنید.",
		"Eat brain-healthy foods such as walnuts and fish.": "غذاهای مغزی مانند گردو و ماهی مصرف کنید.",
	},
}

// New returns a translator for the given locale. Unknown locales behave
// as English.
func New(locale string) *Translator {
	return &Translator{
		locale:  locale,
		catalog: catalogs[locale],
	}
}

func (t *Translator) Locale() string {
	return t.locale
}

// T translates the source string, returning it unchanged when no
// translation exists.
func (t *Translator) T(src string) string {
	if t == nil || t.catalog == nil {
		return src
	}
	if out, ok := t.catalog[src]; ok {
		return out
	}
	return src
}
