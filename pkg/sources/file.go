package sources

import (
	"context"
	"io/fs"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/errors"
)

// ParseFile opens path in fsys, parses it with p and appends the admitted
// records to acc. The file is closed before ParseFile returns, including on
// parse failure. On error acc is left untouched.
func ParseFile(ctx context.Context, fsys fs.FS, path string, p Parser, acc *[]accounts.Record) (Batch, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Batch{}, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	batch, err := p.Parse(ctx, f, path)
	if err != nil {
		return Batch{}, err
	}

	*acc = append(*acc, batch.Records...)
	return batch, nil
}
