package crisis

import "strings"

// crisisKeywords 小寫片語，任一出現即視為危機
// 單字 end/kill/quit 不列入，避免 friend、weekend 之類誤判
var crisisKeywords = []string{
	"suicidal",
	"want to die",
	"i quit",
	"give up",
	"hopeless",
	"no reason to live",
	"no one love me",
	"this is end",
	"ending it all",
	// 聊天備援清單
	"suicide",
	"kill myself",
	"end my life",
	"hurt myself",
}

// SafetyMessage 偵測到危機時取代聊天回覆
const SafetyMessage = "You are going through a tough time, and you are not alone. " +
	"Your family and friends are with you. Your life matters and you matter. " +
	"Please reach out to someone you trust or your local emergency services right now."

// ContainsCrisisKeywords 不分大小寫比對危機片語
func ContainsCrisisKeywords(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
