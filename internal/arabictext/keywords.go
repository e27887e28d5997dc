package arabictext

// Keyword tables used by intent matching and classification. Every Arabic
// entry is stored pre-normalized (run through Normalize) so matching is a
// plain substring test. The tables are built once and never mutated, which
// makes unsynchronized concurrent reads safe.

// NPSKeywords flags question text that asks about likelihood to recommend.
var NPSKeywords = []string{
	// Arabic root verb forms (recommend/advise/refer)
	"توصي", "تنصح", "ترشح", "ترشيح", "تزكي",
	"يوصي", "ينصح", "يرشح", "نوصي", "ننصح",
	// probability/likelihood phrasing
	"احتماليه التوصيه", "احتمال التوصيه", "احتمال ان توصي",
	"مدى احتماليه التوصيه", "مدى احتمال ان تنصح",
	// willingness/readiness phrasing
	"مدى استعدادك للتوصيه", "استعدادك للتوصيه",
	"مدى رغبتك في التوصيه", "رغبتك في التوصيه",
	"استعدادك لترشيح", "مدى استعدادك للترشيح",
	// question forms
	"هل تنصح", "هل توصي", "هل ترشح",
	"هل ستوصي", "هل ستنصح", "هل سترشح",
	"هل يمكنك التوصيه", "هل يمكن ان توصي",
	// capability phrasing
	"قابليه الترشيح", "قابليه التوصيه",
	"امكانيه التوصيه", "امكانيه الترشيح",
	// referral/endorsement terms
	"تزكيه", "تاييد", "اقتراح", "دعم",
	// English
	"recommend", "likely to recommend", "likelihood to recommend",
	"would you recommend", "willing to recommend",
	"refer", "referral", "endorse", "suggest",
	"how likely", "probability of recommending",
}

// CSATKeywords flags question text that asks about satisfaction, service
// quality, or overall experience. Covers formal Arabic plus Gulf dialect.
var CSATKeywords = []string{
	// satisfaction root forms
	"رضا", "راض", "راضي", "رضاك",
	"مرتاح", "ارتياح", "ارتياحك",
	// happiness/contentment
	"سعيد", "سعاده", "سعادتك", "مسرور",
	"مبسوط", "فرحان", "فرح", "ابتهاج",
	// Gulf dialect satisfaction
	"منبسط", "مستانس",
	// evaluation/assessment
	"تقييم", "تقييمك", "تقدير", "تقديرك",
	"رايك", "رايك في", "وجهه نظرك",
	// quality
	"جوده", "جوده الخدمه", "مستوى الجوده",
	"نوعيه", "مستوى",
	// service/experience
	"الخدمه", "خدمه", "خدمتنا", "خدماتنا",
	"تجربه", "تجربتك", "التجربه",
	"مستوى الخدمه", "مستوى التجربه",
	// impression/opinion
	"انطباع", "انطباعك", "راي", "اعجاب",
	// English
	"satisf", "satisfaction", "happy", "pleased",
	"content", "experience", "quality", "service",
	"impression", "opinion", "rate", "rating",
	"how satisfied", "level of satisfaction",
}

// satisfiedKeywords, neutralKeywords, and dissatisfiedKeywords back
// ClassifyChoice. Precedence when classifying is satisfied, then
// dissatisfied, then neutral.
var satisfiedKeywords = []string{
	// Arabic, excellent tier
	"ممتاز", "ممتاز للغايه", "ممتاز جدا", "متميز", "استثنايي",
	"رايع", "رايع جدا", "خرافي", "مذهل", "عظيم",
	// Arabic, very good tier
	"جيد جدا", "جيد للغايه", "حلو", "حلو جدا",
	"طيب", "كويس", "كويس جدا", "تمام",
	// Arabic, good/satisfied tier
	"جيد", "حسن", "لا باس", "لا باس به",
	"راض", "راضي", "راضي جدا", "راضي تماما",
	"مرتاح", "مرتاح جدا", "سعيد", "مبسوط",
	// English
	"excellent", "outstanding", "exceptional", "superb",
	"great", "wonderful", "fantastic", "amazing",
	"very good", "very satisfied", "good", "satisfied",
	"happy", "pleased", "delighted", "content",
}

var neutralKeywords = []string{
	// Arabic
	"محايد", "عادي", "عادي جدا", "متوسط",
	"مقبول", "مقبول نوعا ما", "لا باس", "مش بطال",
	"وسط", "معقول", "ماشي", "ماشي الحال",
	"كذا", "هيك", "يعني", "نص نص",
	// English
	"neutral", "average", "mediocre", "moderate",
	"okay", "ok", "fair", "acceptable",
	"so-so", "neither good nor bad", "middle",
}

var dissatisfiedKeywords = []string{
	// Arabic, strongly dissatisfied
	"سيي جدا", "سيي للغايه", "فظيع", "فظيع جدا",
	"كارثه", "كارثي", "مريع", "بشع", "مقرف",
	"غير مقبول", "غير مقبول نهاييا", "مرفوض",
	// Arabic, dissatisfied
	"سيي", "مش كويس", "مو زين",
	"ضعيف", "ضعيف جدا", "ردي",
	"غير راض", "غير راضي", "غير راضي ابدا",
	"غير مرتاح", "مش مبسوط", "مو مرتاح",
	// Arabic, emotional responses
	"مستا", "مستا جدا", "منزعج", "منزعج جدا",
	"غاضب", "زعلان", "محبط", "يايس",
	"محرج", "مخيب للامال", "مخيب للظن",
	// English
	"terrible", "horrible", "awful", "atrocious",
	"very bad", "very poor", "extremely poor",
	"dissatisfied", "very dissatisfied", "highly dissatisfied",
	"poor", "bad", "unsatisfied", "unhappy",
	"upset", "frustrated", "disappointed", "annoyed",
}

// yesKeywords and noKeywords back ClassifyYesNo. The literal "1" and "0"
// cover numeric yes/no encodings.
var yesKeywords = []string{
	// Arabic formal
	"نعم", "اجل", "بلي",
	// Arabic dialectal
	"اي", "ايه", "ايوا", "اكيد", "طبعا", "طبع",
	// affirmative phrases
	"بكل تاكيد", "بالتاكيد", "موافق", "حسنا", "تمام", "صحيح",
	// English
	"yes", "yeah", "yep", "ok", "okay", "sure", "true",
	// numeric
	"1",
}

var noKeywords = []string{
	// Arabic formal
	"لا", "كلا", "ليس",
	// Arabic negative
	"ابدا", "مستحيل", "رفض", "خطا",
	// phrases
	"غير موافق", "لست متاكد",
	// English
	"no", "nope", "nah", "false",
	// numeric
	"0",
}
