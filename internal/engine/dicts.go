package engine

// 한국어 로케일 ("ko") 데이터 (이름/주소/메모용)
var (
	LastNames  = []string{"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임", "한", "오", "서", "신", "권", "황", "안", "송", "류", "전"}
	FirstNames = []string{"민준", "서준", "도윤", "예준", "시우", "하준", "지호", "주원", "지우", "준우", "서연", "서윤", "서현", "하은", "민서", "지유", "윤서", "채원"}
	Cities     = []string{"서울", "부산", "대구", "인천", "광주", "대전", "울산", "수원", "성남", "고양", "용인", "부천", "안산", "청주", "전주", "천안"}
	Districts  = []string{"강남구", "서초구", "송파구", "종로구", "마포구", "영등포구", "관악구", "동작구", "강동구", "노원구", "은평구", "성북구"}
	Streets    = []string{"테헤란로", "강남대로", "송파대로", "올림픽로", "한강대로", "세종대로", "을지로", "퇴계로", "충무로", "신촌로", "양화로", "경인로"}
	Companies  = []string{"한빛상사", "미래전자", "푸른물산", "새솔테크", "동녘건설", "누리식품", "바른통신", "하늘항공"}
)

// 메모 문장 조각
var (
	NoteSubjects = []string{"고객", "담당자", "거래처", "방문자", "신규 회원", "기존 회원"}
	NoteActions  = []string{"전화 요청", "견적 문의", "주소 변경", "재방문 예정", "자료 발송 완료", "계약 검토 중", "연락 부재"}
)
