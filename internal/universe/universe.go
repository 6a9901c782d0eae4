// Package universe holds the static per-market lookup tables: sector
// definitions, constituent tickers and index symbols. 외부 설정 성격의
// 데이터. 프로세스 시작 시 한 번 로드되는 불변 테이블이며, 전역
// 가변 상태가 아니다. 접근자는 항상 복사본을 돌려준다.
package universe

// Sector is a named group of constituent tickers. 정의 순서가 출력
// 순서를 결정하므로 map이 아니라 슬라이스로 유지한다.
type Sector struct {
	Name    string
	Tickers []string
}

// SectorETF maps a US sector to its proxy ETF symbol
type SectorETF struct {
	Name   string
	Symbol string
}

// Index is a tracked market index
type Index struct {
	Key    string // JSON 출력 키 (kospi, sp500, ...)
	Symbol string // Yahoo Finance symbol
}

// 한국 증시 섹터 정의 (대표 종목 기준)
var krSectors = []Sector{
	{"반도체", []string{"005930.KS", "000660.KS", "042700.KS", "058470.KS", "240810.KS"}},
	{"IT/플랫폼", []string{"035420.KS", "035720.KS", "066570.KS", "251270.KS", "005290.KS"}},
	{"금융", []string{"105560.KS", "055550.KS", "086790.KS", "316140.KS", "138930.KS", "005940.KS"}},
	{"자동차", []string{"005380.KS", "000270.KS", "012330.KS", "011210.KS"}},
	{"헬스케어", []string{"068270.KS", "207940.KS", "000100.KS", "012450.KS", "145020.KS"}},
	{"화학/에너지", []string{"051910.KS", "096770.KS", "011170.KS", "010950.KS"}},
	{"철강/소재", []string{"005490.KS", "004020.KS", "010140.KS", "001430.KS"}},
	{"통신", []string{"017670.KS", "030200.KS", "032640.KS"}},
}

// 섹터별 종목명 (피드가 종목명을 안 줄 때 보완용)
var krNames = map[string]string{
	"005930.KS": "삼성전자", "000660.KS": "SK하이닉스",
	"042700.KS": "한미반도체", "058470.KS": "리노공업",
	"240810.KS": "원익IPS", "035420.KS": "NAVER",
	"035720.KS": "카카오", "066570.KS": "LG전자",
	"251270.KS": "넷마블", "005290.KS": "동진쎄미켐",
	"105560.KS": "KB금융", "055550.KS": "신한지주",
	"086790.KS": "하나금융지주", "316140.KS": "우리금융지주",
	"138930.KS": "BNK금융지주", "005380.KS": "현대차",
	"000270.KS": "기아", "012330.KS": "현대모비스",
	"011210.KS": "현대위아", "068270.KS": "셀트리온",
	"207940.KS": "삼성바이오로직스", "000100.KS": "유한양행",
	"012450.KS": "한화에어로스페이스", "145020.KS": "휴젤",
	"051910.KS": "LG화학", "096770.KS": "SK이노베이션",
	"011170.KS": "롯데케미칼", "010950.KS": "S-Oil",
	"005940.KS": "NH투자증권", "005490.KS": "POSCO홀딩스",
	"004020.KS": "현대제철", "010140.KS": "삼성중공업",
	"001430.KS": "세아베스틸", "017670.KS": "SK텔레콤",
	"030200.KS": "KT", "032640.KS": "LG유플러스",
}

// 미국 증시 섹터 ETF
var usSectorETFs = []SectorETF{
	{"기술", "XLK"},
	{"금융", "XLF"},
	{"에너지", "XLE"},
	{"헬스케어", "XLV"},
	{"산업재", "XLI"},
	{"임의소비재", "XLY"},
	{"필수소비재", "XLP"},
	{"소재", "XLB"},
	{"부동산", "XLRE"},
	{"유틸리티", "XLU"},
	{"통신서비스", "XLC"},
}

// 섹터별 상위 종목 (주도주 풀)
var usSectorStocks = []Sector{
	{"기술", []string{"NVDA", "AAPL", "MSFT", "AVGO", "AMD", "ORCL", "CRM"}},
	{"금융", []string{"BRK-B", "JPM", "V", "MA", "GS", "MS", "BAC"}},
	{"에너지", []string{"XOM", "CVX", "COP", "SLB", "EOG", "MPC", "VLO"}},
	{"헬스케어", []string{"LLY", "UNH", "JNJ", "ABBV", "MRK", "TMO", "DHR"}},
	{"산업재", []string{"CAT", "RTX", "HON", "DE", "GE", "UPS", "LMT"}},
	{"임의소비재", []string{"AMZN", "TSLA", "HD", "MCD", "SBUX", "NKE", "BKNG"}},
	{"필수소비재", []string{"WMT", "PG", "KO", "PEP", "COST", "MO", "PM"}},
	{"소재", []string{"LIN", "APD", "SHW", "FCX", "NEM", "VMC"}},
	{"통신서비스", []string{"META", "GOOGL", "NFLX", "T", "VZ", "DIS", "CMCSA"}},
	{"부동산", []string{"AMT", "PLD", "CCI", "EQIX", "SPG"}},
	{"유틸리티", []string{"NEE", "DUK", "SO", "D", "AEP", "EXC"}},
}

// 주요 지수
var indices = []Index{
	{"kospi", "^KS11"},
	{"kosdaq", "^KQ11"},
	{"sp500", "^GSPC"},
	{"nasdaq", "^IXIC"},
	{"dow", "^DJI"},
	{"usdkrw", "KRW=X"},
}

// KRSectors returns the KR sector definitions in declaration order
func KRSectors() []Sector {
	return copySectors(krSectors)
}

// KRName returns the Korean display name for a KR ticker, falling back
// to the ticker without its exchange suffix
func KRName(ticker string) string {
	if name, ok := krNames[ticker]; ok {
		return name
	}
	if len(ticker) > 3 && ticker[len(ticker)-3:] == ".KS" {
		return ticker[:len(ticker)-3]
	}
	return ticker
}

// USSectorETFs returns the US sector ETF list in declaration order
func USSectorETFs() []SectorETF {
	out := make([]SectorETF, len(usSectorETFs))
	copy(out, usSectorETFs)
	return out
}

// USSectorStocks returns the US per-sector leading stock pools
func USSectorStocks() []Sector {
	return copySectors(usSectorStocks)
}

// Indices returns the tracked index list in declaration order
func Indices() []Index {
	out := make([]Index, len(indices))
	copy(out, indices)
	return out
}

func copySectors(src []Sector) []Sector {
	out := make([]Sector, len(src))
	for i, s := range src {
		tickers := make([]string, len(s.Tickers))
		copy(tickers, s.Tickers)
		out[i] = Sector{Name: s.Name, Tickers: tickers}
	}
	return out
}
