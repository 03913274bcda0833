// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awslabs/ar-go-flows/analysis/flows"
	"github.com/beevik/etree"
)

// WriteXML writes records as a <flows> document:
//
//	<flows subject="app">
//	  <flow>
//	    <source signature="..." caller="..."/>
//	    <sink signature="..." caller="...">
//	      <intent action="..." target="..." data="..." type="...">
//	        <extra key="..."/>
//	      </intent>
//	    </sink>
//	    <path>
//	      <item caller-method="..." index="4">$r4 = ...</item>
//	    </path>
//	  </flow>
//	</flows>
func WriteXML(w io.Writer, subject string, records []flows.Record) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("flows")
	root.CreateAttr("subject", subject)
	for _, r := range records {
		flow := root.CreateElement("flow")
		writeEndpoint(flow.CreateElement("source"), r.Source)
		writeEndpoint(flow.CreateElement("sink"), r.Sink)
		if len(r.Path) > 0 {
			path := flow.CreateElement("path")
			for _, item := range r.Path {
				el := path.CreateElement("item")
				el.CreateAttr("caller-method", item.CallerMethod)
				el.CreateAttr("index", strconv.Itoa(item.Index))
				el.SetText(item.Stmt)
			}
		}
	}
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func writeEndpoint(el *etree.Element, e flows.Endpoint) {
	el.CreateAttr("signature", e.Signature)
	el.CreateAttr("caller", e.Caller)
	if e.Intent.IsEmpty() {
		return
	}
	intent := el.CreateElement("intent")
	for _, attr := range [][2]string{
		{"action", e.Intent.Action},
		{"target", e.Intent.Target},
		{"data", e.Intent.Data},
		{"type", e.Intent.MimeType},
	} {
		if attr[1] != "" {
			intent.CreateAttr(attr[0], attr[1])
		}
	}
	for _, key := range e.Intent.ExtraKeys {
		intent.CreateElement("extra").CreateAttr("key", key)
	}
}

// ReadXML reads a document written by WriteXML
func ReadXML(r io.Reader) (string, []flows.Record, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return "", nil, fmt.Errorf("could not parse xml: %w", err)
	}
	root := doc.SelectElement("flows")
	if root == nil {
		return "", nil, fmt.Errorf("no <flows> element")
	}
	var records []flows.Record
	for i, flow := range root.SelectElements("flow") {
		source := flow.SelectElement("source")
		sink := flow.SelectElement("sink")
		if source == nil || sink == nil {
			return "", nil, fmt.Errorf("flow %d: missing source or sink", i)
		}
		record := flows.Record{Source: readEndpoint(source), Sink: readEndpoint(sink)}
		if path := flow.SelectElement("path"); path != nil {
			for _, el := range path.SelectElements("item") {
				index, err := strconv.Atoi(el.SelectAttrValue("index", "-1"))
				if err != nil {
					return "", nil, fmt.Errorf("flow %d: bad index: %w", i, err)
				}
				record.Path = append(record.Path, flows.PathItem{
					CallerMethod: el.SelectAttrValue("caller-method", ""),
					Stmt:         el.Text(),
					Index:        index,
				})
			}
		}
		records = append(records, record)
	}
	return root.SelectAttrValue("subject", ""), records, nil
}

func readEndpoint(el *etree.Element) flows.Endpoint {
	e := flows.Endpoint{
		Signature: el.SelectAttrValue("signature", ""),
		Caller:    el.SelectAttrValue("caller", ""),
	}
	if intent := el.SelectElement("intent"); intent != nil {
		e.Intent = &flows.IntentInfo{
			Action:   intent.SelectAttrValue("action", ""),
			Target:   intent.SelectAttrValue("target", ""),
			Data:     intent.SelectAttrValue("data", ""),
			MimeType: intent.SelectAttrValue("type", ""),
		}
		for _, extra := range intent.SelectElements("extra") {
			e.Intent.ExtraKeys = append(e.Intent.ExtraKeys, extra.SelectAttrValue("key", ""))
		}
	}
	return e
}
