package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ofxHeader = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
`

const sampleBankOFX = ofxHeader + `<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>POS PURCHASE STARBUCKS
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115130000[0:GMT]
<TRNAMT>-125.00
<FITID>2024011502
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115140000[0:GMT]
<TRNAMT>-4.00
<FITID>2024011503
<NAME>POS PURCHASE STARBUCKS
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-9.99
<FITID>2024012001
<NAME>DEBIT
<MEMO>Netflix
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>2
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-60.00
<FITID>cc-1
<NAME>Shell Oil
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-60.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFileGroupsByAccountAndDay(t *testing.T) {
	baskets, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, baskets, 3)

	assert.Equal(t, "1234567890/2024-01-15", baskets[0].ID)
	assert.Equal(t, []string{"STARBUCKS", "Whole Foods Market"}, baskets[0].Items)

	assert.Equal(t, "4111111111111111/2024-01-15", baskets[1].ID)
	assert.Equal(t, []string{"Shell Oil"}, baskets[1].Items)

	assert.Equal(t, "1234567890/2024-01-20", baskets[2].ID)
	assert.Equal(t, []string{"Netflix"}, baskets[2].Items)
}

func TestParseFileRejectsGarbage(t *testing.T) {
	_, err := NewParser().ParseFile(context.Background(), strings.NewReader("not an ofx document"))
	assert.Error(t, err)
}

func TestPreprocessOFX(t *testing.T) {
	p := NewParser()

	got := p.preprocessOFX("\n\n  <SEVERITY>Info</SEVERITY>\n<CODE\n")
	assert.Equal(t, "<SEVERITY>INFO</SEVERITY>\n<CODE>\n", got)
}

func TestExtractMerchantName(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		want string
		tx   ofxgo.Transaction
	}{
		{
			name: "payee wins",
			tx:   ofxgo.Transaction{Name: "SQ *BLUE BOTTLE", Payee: &ofxgo.Payee{Name: "Blue Bottle Coffee"}},
			want: "Blue Bottle Coffee",
		},
		{
			name: "prefix stripped",
			tx:   ofxgo.Transaction{Name: "CHECK CARD Trader Joes"},
			want: "Trader Joes",
		},
		{
			name: "date stamp stripped",
			tx:   ofxgo.Transaction{Name: "03/14 Apple Store"},
			want: "Apple Store",
		},
		{
			name: "generic name falls back to memo",
			tx:   ofxgo.Transaction{Name: "PAYMENT", Memo: "City Water"},
			want: "City Water",
		},
		{
			name: "empty",
			tx:   ofxgo.Transaction{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.extractMerchantName(tt.tx))
		})
	}
}
