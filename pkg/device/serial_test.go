package device

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    RawSample
		wantErr bool
	}{
		{
			name: "valid line",
			line: "1234567890123,512",
			want: RawSample{Timestamp: time.UnixMicro(1234567890123), Value: 512},
		},
		{
			name: "full scale",
			line: "1234567890123,1023",
			want: RawSample{Timestamp: time.UnixMicro(1234567890123), Value: 1023},
		},
		{
			name: "zero with spaces",
			line: "10, 0",
			want: RawSample{Timestamp: time.UnixMicro(10), Value: 0},
		},
		{
			name:    "invalid - too few fields",
			line:    "1234567890123",
			wantErr: true,
		},
		{
			name:    "invalid - too many fields",
			line:    "1234567890123,512,1",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric timestamp",
			line:    "abc,512",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric value",
			line:    "1234567890123,abc",
			wantErr: true,
		},
		{
			name:    "invalid - above 10 bits",
			line:    "1234567890123,1024",
			wantErr: true,
		},
		{
			name:    "invalid - negative value",
			line:    "1234567890123,-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Timestamp.UnixNano(), got.Timestamp.UnixNano())
			assert.Equal(t, tt.want.Value, got.Value)
		})
	}
}

func TestNew(t *testing.T) {
	dev := New("COM3", 9600, 10)
	assert.NotNil(t, dev)
	assert.Equal(t, "COM3", dev.port)
	assert.Equal(t, 9600, dev.baudRate)
	assert.Equal(t, 10, dev.bufSize)
	assert.Equal(t, 10, cap(dev.samples))
	assert.False(t, dev.IsConnected())
}

func TestNew_Defaults(t *testing.T) {
	dev := New("COM3", 0, 0)
	assert.Equal(t, DefaultBaudRate, dev.baudRate)
	assert.Equal(t, DefaultBufferSize, dev.bufSize)
}

func TestSerial_ReadSamples(t *testing.T) {
	dev := New("test", 0, 0)
	dev.connected = true

	stream := strings.Join([]string{
		"# d2: 0, 4, 0",
		"100,10",
		"",
		"garbage",
		"200,2000",
		"300,1023",
	}, "\n")
	dev.readSamples(strings.NewReader(stream))

	require.Len(t, dev.samples, 2)
	first := <-dev.samples
	second := <-dev.samples
	assert.Equal(t, uint16(10), first.Value)
	assert.Equal(t, int64(100), first.Timestamp.UnixMicro())
	assert.Equal(t, uint16(1023), second.Value)
	assert.Equal(t, int64(300), second.Timestamp.UnixMicro())
}

func TestSerial_ReadSamples_DropsWhenFull(t *testing.T) {
	dev := New("test", 0, 1)
	dev.connected = true

	dev.readSamples(strings.NewReader("1,1\n2,2\n3,3\n"))

	require.Len(t, dev.samples, 1)
	assert.Equal(t, uint16(1), (<-dev.samples).Value)
	assert.Equal(t, uint64(2), dev.Dropped())
}

func TestSerial_ReadSamples_StopsWhenClosed(t *testing.T) {
	dev := New("test", 0, 0)

	dev.readSamples(strings.NewReader("1,1\n"))
	assert.Len(t, dev.samples, 0)
}

func TestSerial_Close_NotConnected(t *testing.T) {
	dev := New("COM3", 0, 0)
	assert.NoError(t, dev.Close())
}
