package decoder

import (
	"fmt"

	"github.com/near/borsh-go"
)

// borshDecode 反序列化固定布局账户，borsh 库遇到畸形数据可能 panic，这里统一转为 DecodeError
func borshDecode(kind AccountKind, data []byte, out interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DecodeError{Kind: kind, Reason: "borsh panic", Err: fmt.Errorf("%v", r)}
		}
	}()

	if err := borsh.Deserialize(out, data); err != nil {
		return &DecodeError{Kind: kind, Reason: "borsh deserialize failed", Err: err}
	}
	return nil
}
