// Copyright © 2023 OpenIM. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apicli

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/openimsdk/tools/errs"
)

type formFile struct {
	field  string
	header *multipart.FileHeader
}

// multipartForm collects fields in insertion order and encodes them as
// multipart/form-data.
type multipartForm struct {
	fields [][2]string
	files  []formFile
}

func (f *multipartForm) set(field, value string) {
	f.fields = append(f.fields, [2]string{field, value})
}

// setNonEmpty only adds the field when value is set.
func (f *multipartForm) setNonEmpty(field, value string) {
	if value != "" {
		f.set(field, value)
	}
}

func (f *multipartForm) setPtr(field string, value *string) {
	if value != nil && *value != "" {
		f.set(field, *value)
	}
}

func (f *multipartForm) file(field string, fh *multipart.FileHeader) {
	if fh != nil {
		f.files = append(f.files, formFile{field: field, header: fh})
	}
}

func (f *multipartForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", errs.WrapMsg(err, "write form field failed", "field", kv[0])
		}
	}
	for _, ff := range f.files {
		if err := copyFile(w, ff); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errs.WrapMsg(err, "close multipart writer failed")
	}
	return &buf, w.FormDataContentType(), nil
}

func copyFile(w *multipart.Writer, ff formFile) error {
	src, err := ff.header.Open()
	if err != nil {
		return errs.WrapMsg(err, "open upload failed", "field", ff.field, "filename", ff.header.Filename)
	}
	defer src.Close()
	dst, err := w.CreateFormFile(ff.field, ff.header.Filename)
	if err != nil {
		return errs.WrapMsg(err, "create form file failed", "field", ff.field)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return errs.WrapMsg(err, "copy upload failed", "field", ff.field)
	}
	return nil
}
