package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{name: "valid limit only", cfg: Config{Limit: 10}},
		{name: "valid offset only", cfg: Config{Offset: 5}},
		{name: "valid limit and offset", cfg: Config{Limit: 10, Offset: 5}},
		{name: "valid tail only", cfg: Config{Tail: 10}},
		{name: "tail ignores offset (valid)", cfg: Config{Tail: 10, Offset: 5}},
		{name: "limit and tail mutually exclusive", cfg: Config{Limit: 10, Tail: 5}, wantErr: true, errMsg: "mutually exclusive"},
		{name: "negative limit invalid", cfg: Config{Limit: -1}, wantErr: true, errMsg: "non-negative"},
		{name: "negative offset invalid", cfg: Config{Offset: -1}, wantErr: true, errMsg: "non-negative"},
		{name: "negative tail invalid", cfg: Config{Tail: -1}, wantErr: true, errMsg: "non-negative"},
		{name: "zero values valid", cfg: Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	assert.False(t, Config{}.IsActive())
	assert.True(t, Config{Limit: 10}.IsActive())
	assert.True(t, Config{Offset: 5}.IsActive())
	assert.True(t, Config{Tail: 10}.IsActive())
}

func TestApply(t *testing.T) {
	arr := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		cfg  Config
		want []int
	}{
		{name: "limit only", cfg: Config{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset only", cfg: Config{Offset: 5}, want: []int{6, 7, 8, 9, 10}},
		{name: "limit and offset", cfg: Config{Limit: 3, Offset: 2}, want: []int{3, 4, 5}},
		{name: "tail only", cfg: Config{Tail: 3}, want: []int{8, 9, 10}},
		{name: "tail ignores offset", cfg: Config{Tail: 2, Offset: 1}, want: []int{9, 10}},
		{name: "offset larger than array", cfg: Config{Offset: 20}, want: []int{}},
		{name: "limit larger than remaining", cfg: Config{Limit: 100, Offset: 5}, want: []int{6, 7, 8, 9, 10}},
		{name: "tail larger than array", cfg: Config{Tail: 100}, want: arr},
		{name: "inactive", cfg: Config{}, want: arr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.cfg, arr))
		})
	}
}

func TestApplyContacts(t *testing.T) {
	list := contact.Generate(5)
	got := Apply(Config{Tail: 2}, list)
	require.Len(t, got, 2)
	assert.Equal(t, list[3], got[0])
	assert.Equal(t, list[4], got[1])
}

func TestApplyEmpty(t *testing.T) {
	assert.Empty(t, Apply(Config{Limit: 3}, []string(nil)))
}
