package learn

// tradToSimp is a small bundled traditional-to-simplified character map,
// covering the characters common enough to show up in on-screen subtitles
// and chat. The original builds this table from a full CEDICT dump at
// startup; this repo ships a fixed subset since no CEDICT-equivalent
// dictionary crate exists in the retrieved example pack (see dictionary.go).
var tradToSimp = map[rune]rune{
	'學': '学', '國': '国', '們': '们', '說': '说', '時': '时', '這': '这',
	'來': '来', '會': '会', '個': '个', '對': '对', '為': '为', '與': '与',
	'後': '后', '沒': '没', '還': '还', '過': '过', '開': '开', '關': '关',
	'東': '东', '車': '车', '長': '长', '問': '问', '見': '见',
	'體': '体', '點': '点', '實': '实', '書': '书', '電': '电',
	'話': '话', '義': '义', '師': '师', '經': '经', '業': '业', '動': '动',
	'買': '买', '賣': '卖', '讓': '让', '誰': '谁', '聽': '听', '覺': '觉',
	'號': '号', '樣': '样', '機': '机', '飛': '飞', '歡': '欢', '樂': '乐',
	'愛': '爱', '間': '间', '頭': '头', '錢': '钱', '麼': '么',
}

// convertToSimplified maps every traditional character in s to its
// simplified form via tradToSimp, leaving characters with no mapping
// (including characters already simplified) unchanged.
func convertToSimplified(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if simp, ok := tradToSimp[r]; ok {
			out = append(out, simp)
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
